package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/iso20022-gen/internal/assembler"
	"fjacquet/iso20022-gen/internal/batch"
	"fjacquet/iso20022-gen/internal/config"
	"fjacquet/iso20022-gen/internal/container"
	"fjacquet/iso20022-gen/internal/logging"
	"fjacquet/iso20022-gen/internal/messages"
	"fjacquet/iso20022-gen/internal/models"
	"fjacquet/iso20022-gen/internal/payloadparser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedIDs struct{}

func (fixedIDs) UETR() string              { return "8a562c67-ca16-48ba-b074-65581be6f011" }
func (fixedIDs) Alphanumeric(n int) string { return strings.Repeat("Z", n) }

func newContainer(t *testing.T, overrides container.Overrides) *container.Container {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Fedwire.RoutingNumber = messages.DefaultRoutingNumber
	cfg.Fedwire.BusinessService = models.EnvironmentTest
	cfg.Fedwire.MarketPracticeRegistry = "www2.swift.com/mystandards/#/group/Federal_Reserve_Financial_Services/Fedwire_Funds_Service"
	cfg.Fedwire.MarketPracticeID = "frb.fedwire.01"
	cfg.Schemas.Directory = t.TempDir()
	cfg.Output.PayloadFormat = payloadparser.FormatJSON
	cfg.Server.Port = 8888
	cfg.Server.MaxUploadMB = 16

	c, err := container.NewContainer(cfg,
		container.WithOverrides(overrides),
		container.WithLogger(logging.NewMockLogger()),
		container.WithGeneratorOptions(
			messages.WithClock(func() time.Time { return time.Date(2025, 1, 9, 15, 4, 5, 0, time.UTC) }),
			messages.WithIDSource(fixedIDs{})))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func assemblerRequest(code string, payload, schema []byte) assembler.Request {
	return assembler.Request{MessageCode: code, Payload: payload, Schema: schema}
}

func lineWith(text, marker string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, marker) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

func readFile(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

// TestEnvelopedCreditTransferRoundTrip generates a complete enveloped
// pacs.008 and parses the same document back into its payload.
func TestEnvelopedCreditTransferRoundTrip(t *testing.T) {
	c := newContainer(t, container.Overrides{})
	schema := readFile(t, "fedwire_funds_incoming.xsd")
	raw := readFile(t, "pacs008_payload.json")

	result, err := c.GetAssembler().Generate(context.Background(), assemblerRequest(models.CreditTransferNamespace, raw, schema))
	require.NoError(t, err)

	doc := result.Document
	assert.True(t, strings.HasPrefix(doc, `<FedwireFundsIncoming xmlns="urn:fedwirefunds:incoming:v001">`))
	assert.Contains(t, doc, "<FedwireFundsIncomingMessage>")
	assert.Contains(t, doc, "<FedwireFundsCustomerCreditTransfer>")
	assert.Less(t, strings.Index(doc, "<head:AppHdr"), strings.Index(doc, "<pacs:Document"))
	assert.Contains(t, doc, "<head:BizSvc>TEST</head:BizSvc>")
	assert.Contains(t, doc, "<pacs:UETR>8a562c67-ca16-48ba-b074-65581be6f011</pacs:UETR>")

	out, err := c.GetParser().Parse(strings.NewReader(doc), models.CreditTransferNamespace)
	require.NoError(t, err)
	msg := out.(models.FedwirePayload).FedwireMessage
	assert.Equal(t, "USD", msg.Amount.Currency)
	assert.Equal(t, "121182904", msg.SenderDepositoryInstitution.SenderABANumber)
	assert.Equal(t, "084106768", msg.ReceiverDepositoryInstitution.ReceiverABANumber)

	// The extracted payload, written as YAML, generates the message again.
	var buf bytes.Buffer
	require.NoError(t, c.GetParser().Encode(&buf, out, payloadparser.FormatYAML))
	again, err := c.GetAssembler().Generate(context.Background(), assemblerRequest(models.CreditTransferNamespace, buf.Bytes(), schema))
	require.NoError(t, err)
	assert.Equal(t, lineWith(result.Body, "IntrBkSttlmAmt"), lineWith(again.Body, "IntrBkSttlmAmt"))
	assert.Equal(t, lineWith(result.Body, "<pacs:MsgId>"), lineWith(again.Body, "<pacs:MsgId>"))
}

func TestEnvelopedStatusRequestWithOverrides(t *testing.T) {
	c := newContainer(t, container.Overrides{RoutingNumber: "011000015", BusinessService: models.EnvironmentProd})
	schema := readFile(t, "fedwire_funds_incoming.xsd")
	raw := []byte(`{"paymentStatusRequest": {
  "msgId": "STS0001",
  "originalMsgId": "20250109TEST001000001",
  "originalEndToEndId": "E2E1",
  "instructingAgentABA": "121182904"
}}`)

	result, err := c.GetAssembler().Generate(context.Background(), assemblerRequest(models.StatusRequestNamespace, raw, schema))
	require.NoError(t, err)
	assert.Equal(t, "FedwireFundsPaymentStatusRequest", result.Envelope.MessageElementName)
	assert.Contains(t, result.Header, "<head:BizSvc>PROD</head:BizSvc>")
	assert.Contains(t, result.Header, "<head:MmbId>011000015</head:MmbId>")

	out, err := c.GetParser().Parse(strings.NewReader(result.Document), models.StatusRequestNamespace)
	require.NoError(t, err)
	req := out.(models.StatusRequestPayload).PaymentStatusRequest
	assert.Equal(t, "STS0001", req.MsgID)
	assert.Equal(t, "121182904", req.InstructingAgentABA)
	assert.Equal(t, "E2E1", req.OriginalEndToEndID)
}

func TestBatchThroughContainer(t *testing.T) {
	c := newContainer(t, container.Overrides{})
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "generated")

	require.NoError(t, os.WriteFile(filepath.Join(in, "pacs.008_wire.json"), readFile(t, "pacs008_payload.json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "admi.004_ping.yaml"),
		[]byte("Document:\n  SysEvtNtfctn:\n    EvtInf:\n      EvtCd: PING\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.json"), []byte(`{}`), 0o644))

	summary, err := c.GetBatchRunner().Run(context.Background(), batch.Job{
		InputDir:  in,
		OutputDir: out,
		Schema:    readFile(t, "fedwire_funds_incoming.xsd"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)

	entries, err := batch.ReadManifest(summary.ManifestPath)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	statuses := map[string]string{}
	for _, e := range entries {
		statuses[e.InputFile] = e.Status
	}
	assert.Equal(t, batch.StatusOK, statuses["admi.004_ping.yaml"])
	assert.Equal(t, batch.StatusOK, statuses["pacs.008_wire.json"])
	assert.Equal(t, batch.StatusFailed, statuses["notes.json"])

	ping, err := os.ReadFile(filepath.Join(out, "admi.004_ping.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(ping), "<FedwireFundsSystemEventNotification>")
	assert.Contains(t, string(ping), "<admi:EvtCd>PING</admi:EvtCd>")
}
