package payloadparser

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/iso20022-gen/internal/assembler"
	"fjacquet/iso20022-gen/internal/logging"
	"fjacquet/iso20022-gen/internal/messages"
	"fjacquet/iso20022-gen/internal/models"
	"fjacquet/iso20022-gen/internal/msgerror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pacs008Code = "urn:iso:std:iso:20022:tech:xsd:pacs.008.001.08"
	pacs028Code = "urn:iso:std:iso:20022:tech:xsd:pacs.028.001.03"
	admi004Code = "urn:iso:std:iso:20022:tech:xsd:admi.004.001.02"
)

type stubIDs struct{}

func (stubIDs) UETR() string              { return "00000000-0000-4000-8000-000000000000" }
func (stubIDs) Alphanumeric(n int) string { return strings.Repeat("A", n) }

// fragments renders header and body for payload the same way the CLI does.
func fragments(t *testing.T, code string, payload []byte) string {
	t.Helper()
	gen := messages.NewGenerator(messages.DefaultSettings(),
		messages.WithClock(func() time.Time { return time.Date(2025, 1, 9, 12, 0, 0, 0, time.UTC) }),
		messages.WithIDSource(stubIDs{}))
	f, err := assembler.New(gen, logging.NewMockLogger()).GenerateFragments(context.Background(), code, payload)
	require.NoError(t, err)
	return f.Header + "\n" + f.Body
}

func TestParse_CreditTransferRoundTrip(t *testing.T) {
	raw, err := os.ReadFile("testdata/pacs008_payload.json")
	require.NoError(t, err)

	p := NewParser(logging.NewMockLogger())
	out, err := p.Parse(strings.NewReader(fragments(t, pacs008Code, raw)), pacs008Code)
	require.NoError(t, err)

	payload, ok := out.(models.FedwirePayload)
	require.True(t, ok)
	msg := payload.FedwireMessage

	assert.Equal(t, models.InputMessageAccountabilityData{
		InputCycleDate:      "20250109",
		InputSource:         "TEST001",
		InputSequenceNumber: "000001",
	}, msg.InputMessageAccountabilityData)
	assert.Equal(t, models.Amount{Amount: "000000001000", Currency: "USD"}, msg.Amount)
	assert.Equal(t, "121182904", msg.SenderDepositoryInstitution.SenderABANumber)
	assert.Equal(t, "NORTH BANK", msg.SenderDepositoryInstitution.SenderShortName)
	assert.Equal(t, "084106768", msg.ReceiverDepositoryInstitution.ReceiverABANumber)
	assert.Equal(t, "SOUTH BANK", msg.ReceiverDepositoryInstitution.ReceiverShortName)
	assert.Equal(t, "JANE SMITH", msg.Originator.Personal.Name)
	assert.Equal(t, "5000000001", msg.Originator.Personal.Identifier)
	assert.Equal(t, models.Address{
		AddressLineOne: "1 MAIN ST",
		AddressLineTwo: "SPRINGFIELD IL 62701",
	}, msg.Originator.Personal.Address)
	assert.Equal(t, "JOHN DOE", msg.Beneficiary.Personal.Name)
	assert.Equal(t, "MEMPHIS TN 38103", msg.Beneficiary.Personal.Address.AddressLineTwo)
}

func TestParse_StatusRequestRoundTrip(t *testing.T) {
	raw := []byte(`{"paymentStatusRequest": {
  "msgId": "STS0001",
  "originalMsgId": "20250109TEST001000001",
  "originalEndToEndId": "MEtoEIDAAAAAAAA",
  "instructingAgentABA": "121182904",
  "instructedAgentABA": "084106768"
}}`)

	out, err := NewParser(nil).Parse(strings.NewReader(fragments(t, pacs028Code, raw)), pacs028Code)
	require.NoError(t, err)

	req := out.(models.StatusRequestPayload).PaymentStatusRequest
	assert.Equal(t, "STS0001", req.MsgID)
	assert.Equal(t, "20250109TEST001000001", req.OriginalMsgID)
	assert.Equal(t, models.DefaultOriginalMessageNameID, req.OriginalMsgNmID)
	assert.Equal(t, "2025-01-09T12:00:00Z", req.CreationDateTime)
	assert.Equal(t, "MEtoEIDAAAAAAAA", req.OriginalEndToEndID)
	assert.Empty(t, req.OriginalUETR)
	assert.Equal(t, "121182904", req.InstructingAgentABA)
	assert.Equal(t, "084106768", req.InstructedAgentABA)
}

func TestParse_SystemEventRoundTrip(t *testing.T) {
	raw := []byte(`
Document:
  SysEvtNtfctn:
    EvtInf:
      EvtCd: PING
      EvtParam: hello
`)

	out, err := NewParser(nil).Parse(strings.NewReader(fragments(t, admi004Code, raw)), admi004Code)
	require.NoError(t, err)

	payload := out.(models.SystemEventPayload)
	evt := payload.Document.Notification().EvtInf
	assert.Equal(t, "PING", evt.EvtCd)
	assert.Equal(t, "hello", evt.EvtParam)
	assert.Equal(t, "2025-01-09T12:00:00Z", evt.EvtTm)

	require.NotNil(t, payload.AppHdr)
	assert.Equal(t, messages.DefaultRoutingNumber, payload.AppHdr.From)
	assert.Equal(t, "20250109PINGAAAAAAAA", payload.AppHdr.BizMsgIdr)
}

func TestParse_Errors(t *testing.T) {
	p := NewParser(logging.NewMockLogger())

	tests := []struct {
		name   string
		input  string
		code   string
		target error
	}{
		{"unsupported message", "<Document/>", "urn:iso:std:iso:20022:tech:xsd:camt.053.001.02", msgerror.ErrUnsupportedMessage},
		{"malformed xml", "<Document><Open></Document>", pacs008Code, msgerror.ErrDataExtraction},
		{"wrong document", "<Document><SysEvtNtfctn/></Document>", pacs008Code, msgerror.ErrDataExtraction},
		{"short message id", "<Document><FIToFICstmrCdtTrf><GrpHdr><MsgId>20250109</MsgId></GrpHdr></FIToFICstmrCdtTrf></Document>", pacs008Code, msgerror.ErrDataExtraction},
		{"missing status request", "<Document/>", pacs028Code, msgerror.ErrDataExtraction},
		{"missing notification", "<Document/>", admi004Code, msgerror.ErrDataExtraction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := p.Parse(strings.NewReader(tt.input), tt.code)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, tt.target), err.Error())
		})
	}
}

func TestParseFile(t *testing.T) {
	p := NewParser(logging.NewMockLogger())

	path := filepath.Join(t.TempDir(), "admi.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<Document xmlns="urn:iso:std:iso:20022:tech:xsd:admi.004.001.02">
  <SysEvtNtfctn><EvtInf><EvtCd>EXTN</EvtCd></EvtInf></SysEvtNtfctn>
</Document>`), 0600))

	out, err := p.ParseFile(path, admi004Code)
	require.NoError(t, err)
	payload := out.(models.SystemEventPayload)
	assert.Equal(t, "EXTN", payload.Document.Notification().EvtInf.EvtCd)
	assert.Nil(t, payload.AppHdr)

	_, err = p.ParseFile(filepath.Join(t.TempDir(), "missing.xml"), admi004Code)
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	payload := models.StatusRequestPayload{PaymentStatusRequest: models.StatusRequest{MsgID: "M1", OriginalMsgID: "O1"}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, payload, FormatJSON))
	assert.Equal(t, "{\n  \"paymentStatusRequest\": {\n    \"msgId\": \"M1\",\n    \"originalMsgId\": \"O1\"\n  }\n}\n", buf.String())

	buf.Reset()
	require.NoError(t, Encode(&buf, payload, FormatYAML))
	assert.Equal(t, "paymentStatusRequest:\n  msgId: M1\n  originalMsgId: O1\n", buf.String())

	assert.Error(t, Encode(&buf, payload, "toml"))
}
