package messages

import (
	"sort"
	"strings"

	"fjacquet/iso20022-gen/internal/models"
	"fjacquet/iso20022-gen/internal/msgerror"
)

type buildFunc func(g *Generator, raw []byte, definition string) (Built, error)

type entry struct {
	prefix string
	build  buildFunc
}

var registry = map[string]entry{
	models.MessageTypeCreditTransfer: {prefix: "pacs", build: (*Generator).buildCreditTransfer},
	models.MessageTypeStatusRequest:  {prefix: "pacs", build: (*Generator).buildStatusRequest},
	models.MessageTypeSystemEvent:    {prefix: "admi", build: (*Generator).buildSystemEvent},
}

// Definition returns the message definition identifier of a message code,
// the segment after the last colon ("pacs.008.001.08").
func Definition(messageCode string) string {
	code := strings.TrimSpace(messageCode)
	if i := strings.LastIndex(code, ":"); i >= 0 {
		return code[i+1:]
	}
	return code
}

// TypeOf returns the message type of a message code ("pacs.008").
func TypeOf(messageCode string) string {
	parts := strings.SplitN(Definition(messageCode), ".", 3)
	if len(parts) < 2 {
		return parts[0]
	}
	return parts[0] + "." + parts[1]
}

// Supported lists the message types that have a builder, sorted.
func Supported() []string {
	types := make([]string, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// IsSupported reports whether messageCode has a builder.
func IsSupported(messageCode string) bool {
	_, ok := registry[TypeOf(messageCode)]
	return ok
}

// Prefix returns the namespace prefix a message body is rendered with.
func Prefix(messageCode string) (string, error) {
	e, err := lookup(messageCode)
	if err != nil {
		return "", err
	}
	return e.prefix, nil
}

func lookup(messageCode string) (entry, error) {
	e, ok := registry[TypeOf(messageCode)]
	if !ok {
		return entry{}, &msgerror.UnsupportedMessageError{MessageCode: messageCode}
	}
	return e, nil
}
