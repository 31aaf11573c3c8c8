package parse_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/iso20022-gen/cmd/parse"
	"fjacquet/iso20022-gen/internal/logging"
	"fjacquet/iso20022-gen/internal/msgerror"
	"fjacquet/iso20022-gen/internal/payloadparser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubParser struct {
	input    string
	code     string
	payload  any
	parseErr error
}

func (s *stubParser) Parse(r io.Reader, messageCode string) (any, error) {
	data, _ := io.ReadAll(r)
	s.input = string(data)
	s.code = messageCode
	return s.payload, s.parseErr
}

func (s *stubParser) ParseFile(path, messageCode string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s.input = string(data)
	s.code = messageCode
	return s.payload, s.parseErr
}

func (s *stubParser) Encode(w io.Writer, payload any, format string) error {
	if format != payloadparser.FormatJSON {
		return errors.New("unsupported format")
	}
	return json.NewEncoder(w).Encode(payload)
}

func TestParseCommand(t *testing.T) {
	assert.Equal(t, "parse", parse.Cmd.Use)
	require.NotNil(t, parse.Cmd.Flags().Lookup("message-code"))
	require.NotNil(t, parse.Cmd.Flags().Lookup("format"))
}

func TestParseWithError(t *testing.T) {
	p := &stubParser{payload: map[string]string{"EvtCd": "PING"}}
	var stdout bytes.Buffer
	logger := logging.NewMockLogger()

	err := parse.ParseWithError(p, "-", "", "urn:code", "JSON", strings.NewReader("<xml/>"), &stdout, logger)
	require.NoError(t, err)
	assert.Equal(t, "<xml/>", p.input)
	assert.Equal(t, "urn:code", p.code)
	assert.JSONEq(t, `{"EvtCd":"PING"}`, stdout.String())
	assert.True(t, logger.HasEntry("INFO", "Payload extracted"))
}

func TestParseWithError_WritesFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "message.xml")
	out := filepath.Join(dir, "payload.json")
	require.NoError(t, os.WriteFile(in, []byte("<doc/>"), 0o644))

	p := &stubParser{payload: map[string]int{"n": 1}}
	require.NoError(t, parse.ParseWithError(p, in, out, "urn:code", "json", nil, nil, logging.NewMockLogger()))
	assert.Equal(t, "<doc/>", p.input)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(data))
}

func TestParseWithError_Errors(t *testing.T) {
	t.Run("parse failure", func(t *testing.T) {
		p := &stubParser{parseErr: errors.New("bad xml")}
		err := parse.ParseWithError(p, "-", "", "urn:code", "json", strings.NewReader("x"), &bytes.Buffer{}, logging.NewMockLogger())
		assert.EqualError(t, err, "bad xml")
	})

	t.Run("unknown format", func(t *testing.T) {
		p := &stubParser{payload: 1}
		err := parse.ParseWithError(p, "-", "", "urn:code", "toml", strings.NewReader("x"), &bytes.Buffer{}, logging.NewMockLogger())
		assert.Error(t, err)
	})

	t.Run("unsupported message code", func(t *testing.T) {
		p := payloadparser.NewParser(logging.NewMockLogger())
		err := parse.ParseWithError(p, "-", "", "urn:iso:std:iso:20022:tech:xsd:camt.053.001.08", "json",
			strings.NewReader("<Document/>"), &bytes.Buffer{}, logging.NewMockLogger())
		assert.ErrorIs(t, err, msgerror.ErrUnsupportedMessage)
	})
}
