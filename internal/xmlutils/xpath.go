// Package xmlutils provides the XPath helpers used to read ISO 20022
// documents back into payloads.
package xmlutils

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/xmlpath.v2"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// LoadXMLFile loads an XML file and returns the XML root node
func LoadXMLFile(xmlFilePath string) (*xmlpath.Node, error) {
	file, err := os.Open(xmlFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XML file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	return ParseXML(file)
}

// ParseXML parses a document or fragment read from r. Several top-level
// elements (a header fragment followed by a body fragment) are accepted.
func ParseXML(r io.Reader) (*xmlpath.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read XML: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("failed to parse XML: empty input")
	}
	if !bytes.HasPrefix(data, []byte("<?xml")) {
		// a synthetic parent makes sibling fragments one document
		data = append(append([]byte("<fragments>"), data...), []byte("</fragments>")...)
	}

	root, err := xmlpath.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return root, nil
}

// ExtractFromXML extracts values from an XML node using an XPath expression
func ExtractFromXML(root *xmlpath.Node, xpath string) ([]string, error) {
	path, err := xmlpath.Compile(xpath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile XPath: %w", err)
	}

	var values []string
	iter := path.Iter(root)
	for iter.Next() {
		values = append(values, iter.Node().String())
	}

	return values, nil
}

// First returns the cleaned text of the first match of xpath, or "".
func First(root *xmlpath.Node, xpath string) string {
	values, err := ExtractFromXML(root, xpath)
	if err != nil {
		log.WithError(err).WithField("xpath", xpath).Debug("XPath extraction failed")
		return ""
	}
	return CleanText(GetOrEmpty(values, 0))
}

// All returns the cleaned text of every match of xpath.
func All(root *xmlpath.Node, xpath string) []string {
	values, err := ExtractFromXML(root, xpath)
	if err != nil {
		log.WithError(err).WithField("xpath", xpath).Debug("XPath extraction failed")
		return nil
	}
	for i, v := range values {
		values[i] = CleanText(v)
	}
	return values
}

// Exists reports whether xpath matches anything.
func Exists(root *xmlpath.Node, xpath string) bool {
	path, err := xmlpath.Compile(xpath)
	if err != nil {
		return false
	}
	return path.Exists(root)
}

// GetOrEmpty returns the value at the specified index in a slice, or an empty string if the index is out of bounds
func GetOrEmpty(slice []string, index int) string {
	if index < len(slice) {
		return slice[index]
	}
	return ""
}

// CleanText trims element text and collapses inner whitespace runs,
// including the newlines and indentation of pretty-printed documents.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
