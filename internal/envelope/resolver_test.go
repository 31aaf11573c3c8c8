package envelope

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"fjacquet/iso20022-gen/internal/msgerror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pacs008Code = "urn:iso:std:iso:20022:tech:xsd:pacs.008.001.08"
	pacs028Code = "urn:iso:std:iso:20022:tech:xsd:pacs.028.001.03"
	admi004Code = "urn:iso:std:iso:20022:tech:xsd:admi.004.001.02"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "fedwire_funds_incoming.xsd"))
	require.NoError(t, err)
	return data
}

func TestResolver_Resolve(t *testing.T) {
	schema := loadFixture(t)
	r := NewResolver()

	tests := []struct {
		name        string
		messageCode string
		element     string
	}{
		{"credit transfer", pacs008Code, "FedwireFundsCustomerCreditTransfer"},
		{"payment status request", pacs028Code, "FedwireFundsPaymentStatusRequest"},
		{"system event in nested sequence", admi004Code, "FedwireFundsSystemEventNotification"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := r.Resolve(schema, tt.messageCode)
			require.NoError(t, err)
			assert.Equal(t, Descriptor{
				MessageElementName:   tt.element,
				TargetNamespace:      "urn:fedwirefunds:incoming:v001",
				RootElementName:      "FedwireFundsIncoming",
				ContainerElementName: "FedwireFundsIncomingMessage",
			}, d)
		})
	}
}

func TestResolver_EveryDeclaredMessageResolves(t *testing.T) {
	schema := loadFixture(t)
	r := NewResolver()

	messages, err := r.Messages(schema)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	sd, err := ParseSchema(schema, TopLevel)
	require.NoError(t, err)

	for _, m := range messages {
		d, err := r.Resolve(schema, m.MessageCode)
		require.NoError(t, err)
		assert.Equal(t, m.ElementName, d.MessageElementName)

		for _, el := range sd.Elements {
			if el.Name != d.MessageElementName {
				continue
			}
			var resolved []string
			for _, ref := range el.ChildRefs {
				if ref.Local == DocumentRef {
					uri, _ := sd.Resolve(ref)
					resolved = append(resolved, uri)
				}
			}
			assert.Equal(t, []string{m.MessageCode}, resolved)
		}
	}
}

func TestResolver_Errors(t *testing.T) {
	tests := []struct {
		name        string
		schema      string
		messageCode string
		kind        error
	}{
		{
			name:        "unknown message code",
			schema:      "fixture",
			messageCode: "urn:iso:std:iso:20022:tech:xsd:camt.056.001.08",
			kind:        msgerror.ErrMessageCodeNotFound,
		},
		{
			name:        "technical header is never a message element",
			schema:      "fixture",
			messageCode: "urn:fedwirefunds:technical:v001",
			kind:        msgerror.ErrMessageCodeNotFound,
		},
		{
			name:        "empty message code",
			schema:      "fixture",
			messageCode: "",
			kind:        msgerror.ErrMessageCodeNotFound,
		},
		{
			name:        "malformed schema",
			schema:      `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:x">`,
			messageCode: pacs008Code,
			kind:        msgerror.ErrSchemaParse,
		},
		{
			name:        "empty schema",
			schema:      "",
			messageCode: pacs008Code,
			kind:        msgerror.ErrSchemaParse,
		},
		{
			name: "missing target namespace",
			schema: `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="A"/><xs:element name="B"/>
</xs:schema>`,
			messageCode: pacs008Code,
			kind:        msgerror.ErrMissingTargetNamespace,
		},
		{
			name: "single top-level element",
			schema: `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:x">
  <xs:element name="Only"/>
</xs:schema>`,
			messageCode: pacs008Code,
			kind:        msgerror.ErrInsufficientTopLevelElements,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := []byte(tt.schema)
			if tt.schema == "fixture" {
				schema = loadFixture(t)
			}
			d, err := NewResolver().Resolve(schema, tt.messageCode)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			assert.Equal(t, Descriptor{}, d)
		})
	}
}

func TestResolver_TwoElementsUsesSecondAsContainer(t *testing.T) {
	schema := `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" xmlns:p="urn:p" targetNamespace="urn:env">
  <xs:element name="Root"/>
  <xs:element name="Container">
    <xs:complexType><xs:sequence><xs:element ref="p:Document"/></xs:sequence></xs:complexType>
  </xs:element>
</xs:schema>`

	_, err := NewResolver().Resolve([]byte(schema), "urn:p")
	assert.True(t, errors.Is(err, msgerror.ErrMessageCodeNotFound))

	names, err := ParseSchema([]byte(schema), TopLevel)
	require.NoError(t, err)
	root, container, err := PositionalPolicy(names.ElementNames())
	require.NoError(t, err)
	assert.Equal(t, "Root", root)
	assert.Equal(t, "Container", container)
}

const nestedSchema = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" xmlns:p8="urn:p8" targetNamespace="urn:env">
  <xs:element name="Env">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="Hdr" type="xs:string"/>
        <xs:element name="Msgs">
          <xs:complexType>
            <xs:choice>
              <xs:element name="CreditTransfer">
                <xs:complexType><xs:sequence><xs:element ref="p8:Document"/></xs:sequence></xs:complexType>
              </xs:element>
            </xs:choice>
          </xs:complexType>
        </xs:element>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`

func TestResolver_NestedScope(t *testing.T) {
	_, err := NewResolver().Resolve([]byte(nestedSchema), "urn:p8")
	assert.True(t, errors.Is(err, msgerror.ErrInsufficientTopLevelElements))

	d, err := NewResolver(WithScope(Nested)).Resolve([]byte(nestedSchema), "urn:p8")
	require.NoError(t, err)
	assert.Equal(t, Descriptor{
		MessageElementName:   "CreditTransfer",
		TargetNamespace:      "urn:env",
		RootElementName:      "Env",
		ContainerElementName: "Msgs",
	}, d)
}

func TestResolver_CustomPolicy(t *testing.T) {
	firstTwo := func(names []string) (string, string, error) {
		if len(names) < 2 {
			return "", "", errors.New("need two")
		}
		return names[0], names[1], nil
	}

	d, err := NewResolver(WithPolicy(firstTwo)).Resolve(loadFixture(t), pacs008Code)
	require.NoError(t, err)
	assert.Equal(t, "FedwireFundsIncomingTechnicalHeader", d.ContainerElementName)
	assert.Equal(t, "FedwireFundsCustomerCreditTransfer", d.MessageElementName)
}

func TestResolver_ConcurrentUse(t *testing.T) {
	schema := loadFixture(t)
	r := NewResolver()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := r.Resolve(schema, pacs028Code)
			assert.NoError(t, err)
			assert.Equal(t, "FedwireFundsPaymentStatusRequest", d.MessageElementName)
		}()
	}
	wg.Wait()
}
