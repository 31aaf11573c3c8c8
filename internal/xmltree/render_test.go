package xmltree

import (
	"errors"
	"strings"
	"testing"

	"fjacquet/iso20022-gen/internal/msgerror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		tree     Node
		opts     RenderOptions
		expected string
	}{
		{
			name: "namespace declared on the single top-level element",
			tree: NewMapping().Set("AppHdr", NewMapping().
				Set("Fr", NewMapping().Set("Id", Scalar("121182904"))).
				Set("BizMsgIdr", Scalar("X1"))),
			opts: RenderOptions{Prefix: "head", Namespace: "urn:iso:std:iso:20022:tech:xsd:head.001.001.03"},
			expected: `<head:AppHdr xmlns:head="urn:iso:std:iso:20022:tech:xsd:head.001.001.03">
  <head:Fr>
    <head:Id>121182904</head:Id>
  </head:Fr>
  <head:BizMsgIdr>X1</head:BizMsgIdr>
</head:AppHdr>`,
		},
		{
			name: "explicit root wraps the tree",
			tree: NewMapping().Set("FIToFICstmrCdtTrf", NewMapping().
				Set("GrpHdr", NewMapping().Set("MsgId", Scalar("M1")))),
			opts: RenderOptions{Prefix: "pacs", Namespace: "urn:p", RootName: "Document"},
			expected: `<pacs:Document xmlns:pacs="urn:p">
  <pacs:FIToFICstmrCdtTrf>
    <pacs:GrpHdr>
      <pacs:MsgId>M1</pacs:MsgId>
    </pacs:GrpHdr>
  </pacs:FIToFICstmrCdtTrf>
</pacs:Document>`,
		},
		{
			name:     "default namespace without prefix",
			tree:     NewMapping().Set("Document", NewMapping().Set("Id", Scalar("1"))),
			opts:     RenderOptions{Namespace: "urn:x"},
			expected: "<Document xmlns=\"urn:x\">\n  <Id>1</Id>\n</Document>",
		},
		{
			name: "attributes and text are never prefixed",
			tree: NewMapping().Set("IntrBkSttlmAmt", NewMapping().
				Set("@Ccy", Scalar("USD")).
				Set("#text", Scalar("10.0"))),
			opts:     RenderOptions{Prefix: "pacs"},
			expected: `<pacs:IntrBkSttlmAmt Ccy="USD">10.0</pacs:IntrBkSttlmAmt>`,
		},
		{
			name: "sequence renders as repeated siblings in order",
			tree: NewMapping().Set("PstlAdr", NewMapping().
				Set("AdrLine", Sequence{Scalar("one"), Scalar("two"), Scalar("three")})),
			expected: `<PstlAdr>
  <AdrLine>one</AdrLine>
  <AdrLine>two</AdrLine>
  <AdrLine>three</AdrLine>
</PstlAdr>`,
		},
		{
			name: "absent values never render",
			tree: NewMapping().
				Set("A", NewMapping().Set("B", Absent).Set("C", Scalar("x"))).
				Set("D", Absent),
			expected: "<A>\n  <C>x</C>\n</A>",
		},
		{
			name:     "several top-level elements without namespace",
			tree:     NewMapping().Set("A", Scalar("1")).Set("B", Scalar("2")),
			expected: "<A>1</A>\n<B>2</B>",
		},
		{
			name:     "empty values keep explicit end tags",
			tree:     NewMapping().Set("A", NewMapping().Set("B", Scalar("")).Set("C", NewMapping())),
			expected: "<A>\n  <B></B>\n  <C></C>\n</A>",
		},
		{
			name:     "text is escaped",
			tree:     NewMapping().Set("Nm", Scalar(`Smith & Sons <"Ltd">`)),
			expected: `<Nm>Smith &amp; Sons &lt;"Ltd"&gt;</Nm>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.tree, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestRender_NoPrologNoTrailingNewline(t *testing.T) {
	out, err := Render(sampleTree(), RenderOptions{Prefix: "pacs", Namespace: "urn:p", RootName: "Document"})
	require.NoError(t, err)

	assert.False(t, strings.HasPrefix(out, "<?xml"))
	assert.False(t, strings.HasSuffix(out, "\n"))
	assert.NotContains(t, out, "Cdtr")
	assert.NotContains(t, out, "NbOfTxs")
	assert.Equal(t, 2, strings.Count(out, "<pacs:AdrLine>"))
}

func TestRender_DoesNotMutateInput(t *testing.T) {
	tree := NewMapping().Set("AppHdr", NewMapping().Set("Id", Scalar("1")))
	_, err := Render(tree, RenderOptions{Prefix: "head", Namespace: "urn:h"})
	require.NoError(t, err)

	hdr, _ := tree.Get("AppHdr")
	assert.Equal(t, []string{"Id"}, hdr.(*Mapping).Keys())
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name string
		tree Node
		opts RenderOptions
	}{
		{
			name: "nil tree",
			tree: nil,
		},
		{
			name: "scalar root",
			tree: Scalar("x"),
		},
		{
			name: "nil value in mapping",
			tree: NewMapping().Set("A", nil),
		},
		{
			name: "sequence inside a sequence",
			tree: NewMapping().Set("A", Sequence{Sequence{Scalar("1")}}),
		},
		{
			name: "mapping used as attribute value",
			tree: NewMapping().Set("A", NewMapping().Set("@Ccy", NewMapping())),
		},
		{
			name: "sequence used as text value",
			tree: NewMapping().Set("A", NewMapping().Set("#text", Sequence{Scalar("1")})),
		},
		{
			name: "namespace with several top-level elements",
			tree: NewMapping().Set("A", Scalar("1")).Set("B", Scalar("2")),
			opts: RenderOptions{Namespace: "urn:x"},
		},
		{
			name: "attribute at document level",
			tree: NewMapping().Set("@xmlns", Scalar("urn:x")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.tree, tt.opts)
			require.Error(t, err)
			assert.Empty(t, out)
			assert.True(t, errors.Is(err, msgerror.ErrSerialization))
		})
	}
}
