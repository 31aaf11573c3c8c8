package render_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/iso20022-gen/cmd/render"
	"fjacquet/iso20022-gen/internal/msgerror"
	"fjacquet/iso20022-gen/internal/xmltree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWithError_YAMLFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "apphdr.xml")
	err := render.RenderWithError("testdata/apphdr.yaml", out,
		xmltree.RenderOptions{Prefix: "head", Namespace: "urn:iso:std:iso:20022:tech:xsd:head.001.001.03"}, nil, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, `<head:AppHdr xmlns:head="urn:iso:std:iso:20022:tech:xsd:head.001.001.03">
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
`, string(data))
}

func TestRenderWithError_StdinWithRoot(t *testing.T) {
	var stdout bytes.Buffer
	err := render.RenderWithError("", "", xmltree.RenderOptions{Prefix: "admi", Namespace: "urn:a", RootName: "Document"},
		strings.NewReader(`{"SysEvtNtfctn": {"EvtInf": {"EvtCd": "PING"}}}`), &stdout)
	require.NoError(t, err)
	assert.Equal(t, `<admi:Document xmlns:admi="urn:a">
  <admi:SysEvtNtfctn>
    <admi:EvtInf>
      <admi:EvtCd>PING</admi:EvtCd>
    </admi:EvtInf>
  </admi:SysEvtNtfctn>
</admi:Document>
`, stdout.String())
}

func TestRenderWithError_Errors(t *testing.T) {
	err := render.RenderWithError("-", "", xmltree.RenderOptions{Namespace: "urn:x"},
		strings.NewReader(`{"A": "1", "B": "2"}`), &bytes.Buffer{})
	assert.ErrorIs(t, err, msgerror.ErrSerialization)

	err = render.RenderWithError("-", "", xmltree.RenderOptions{}, strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)
}
