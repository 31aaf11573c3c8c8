package xmlutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const headerAndBody = `<head:AppHdr xmlns:head="urn:iso:std:iso:20022:tech:xsd:head.001.001.03">
  <head:Fr>
    <head:FIId>
      <head:FinInstnId>
        <head:ClrSysMmbId>
          <head:MmbId>121182904</head:MmbId>
        </head:ClrSysMmbId>
      </head:FinInstnId>
    </head:FIId>
  </head:Fr>
  <head:BizMsgIdr>20250109TEST001000001</head:BizMsgIdr>
</head:AppHdr>
<pacs:Document xmlns:pacs="urn:iso:std:iso:20022:tech:xsd:pacs.008.001.08">
  <pacs:FIToFICstmrCdtTrf>
    <pacs:GrpHdr>
      <pacs:MsgId>20250109TEST001000001</pacs:MsgId>
    </pacs:GrpHdr>
    <pacs:CdtTrfTxInf>
      <pacs:IntrBkSttlmAmt Ccy="USD">10.0</pacs:IntrBkSttlmAmt>
      <pacs:Dbtr>
        <pacs:Nm>JANE   SMITH</pacs:Nm>
        <pacs:PstlAdr>
          <pacs:AdrLine>1 MAIN ST</pacs:AdrLine>
          <pacs:AdrLine>SPRINGFIELD</pacs:AdrLine>
        </pacs:PstlAdr>
      </pacs:Dbtr>
    </pacs:CdtTrfTxInf>
  </pacs:FIToFICstmrCdtTrf>
</pacs:Document>`

func TestParseXML_FragmentsAndPrefixes(t *testing.T) {
	root, err := ParseXML(strings.NewReader(headerAndBody))
	require.NoError(t, err)

	p := DefaultPacs008XPaths()
	h := DefaultAppHdrXPaths()

	assert.True(t, Exists(root, p.Document))
	assert.Equal(t, "20250109TEST001000001", First(root, p.GroupHeader.MsgID))
	assert.Equal(t, "10.0", First(root, p.Payment.Amount))
	assert.Equal(t, "USD", First(root, p.Payment.Currency))
	assert.Equal(t, "JANE SMITH", First(root, p.Debtor.Name))
	assert.Equal(t, []string{"1 MAIN ST", "SPRINGFIELD"}, All(root, p.Debtor.AddressLines))
	assert.Empty(t, All(root, p.Creditor.AddressLines))
	assert.Equal(t, "121182904", First(root, h.From))
	assert.Equal(t, "", First(root, h.To))
	assert.False(t, Exists(root, DefaultAdmi004XPaths().Document))
}

func TestParseXML_WithProlog(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:admi.004.001.02">
  <SysEvtNtfctn><EvtInf><EvtCd>PING</EvtCd></EvtInf></SysEvtNtfctn>
</Document>`
	root, err := ParseXML(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "PING", First(root, DefaultAdmi004XPaths().EventCode))
}

func TestParseXML_Errors(t *testing.T) {
	_, err := ParseXML(strings.NewReader("   "))
	assert.Error(t, err)

	_, err = ParseXML(strings.NewReader("<Document><Unclosed></Document>"))
	assert.Error(t, err)
}

func TestLoadXMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "message.xml")
	require.NoError(t, os.WriteFile(path, []byte(headerAndBody), 0600))

	_, err := LoadXMLFile(filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)

	root, err := LoadXMLFile(path)
	require.NoError(t, err)
	_, err = ExtractFromXML(root, "//[")
	assert.Error(t, err)
	assert.Equal(t, "", First(root, "//["))
	assert.Nil(t, All(root, "//["))
	assert.False(t, Exists(root, "//["))
}

func TestGetOrEmpty(t *testing.T) {
	tests := []struct {
		name     string
		slice    []string
		index    int
		expected string
	}{
		{"valid index", []string{"a", "b"}, 1, "b"},
		{"out of bounds", []string{"a"}, 3, ""},
		{"nil slice", nil, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetOrEmpty(tt.slice, tt.index))
		})
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "JOHN DOE", CleanText("\n   JOHN\t\tDOE  \n"))
	assert.Equal(t, "", CleanText("   "))
}

func TestDefaultXPathsAreComplete(t *testing.T) {
	p028 := DefaultPacs028XPaths()
	for _, xp := range []string{p028.Document, p028.MsgID, p028.Original.MsgID, p028.Original.UETR, p028.InstructedAgent} {
		assert.True(t, strings.HasPrefix(xp, "//FIToFIPmtStsReq"), xp)
	}
	a := DefaultAdmi004XPaths()
	assert.NotEmpty(t, a.EventParm)
	assert.NotEmpty(t, a.EventTime)
}
