package models

// SystemEventPayload is the JSON payload of a system event notification
// (admi.004). It mirrors the document layout; both the abbreviated
// SysEvtNtfctn and the longer SystemEvtNtfctn spellings are accepted.
type SystemEventPayload struct {
	AppHdr   *HeaderOverrides    `json:"appHdr,omitempty" yaml:"appHdr,omitempty"`
	Document SystemEventDocument `json:"Document" yaml:"Document"`
}

// SystemEventDocument holds the notification under either spelling.
type SystemEventDocument struct {
	SysEvtNtfctn    *SystemEventNotification `json:"SysEvtNtfctn,omitempty" yaml:"SysEvtNtfctn,omitempty"`
	SystemEvtNtfctn *SystemEventNotification `json:"SystemEvtNtfctn,omitempty" yaml:"SystemEvtNtfctn,omitempty"`
}

// Notification returns whichever spelling is present, preferring the
// longer one.
func (d SystemEventDocument) Notification() *SystemEventNotification {
	if d.SystemEvtNtfctn != nil {
		return d.SystemEvtNtfctn
	}
	return d.SysEvtNtfctn
}

// SystemEventNotification wraps the event information.
type SystemEventNotification struct {
	EvtInf EventInformation `json:"EvtInf" yaml:"EvtInf"`
}

// EventInformation describes one system event.
type EventInformation struct {
	EvtCd    string `json:"EvtCd" yaml:"EvtCd"`
	EvtParam string `json:"EvtParam,omitempty" yaml:"EvtParam,omitempty"`
	EvtTm    string `json:"EvtTm,omitempty" yaml:"EvtTm,omitempty"`
}

// HeaderOverrides lets a payload that has no natural sender or receiver
// name them for the business application header.
type HeaderOverrides struct {
	From      string `json:"from,omitempty" yaml:"from,omitempty"`
	To        string `json:"to,omitempty" yaml:"to,omitempty"`
	BizMsgIdr string `json:"bizMsgIdr,omitempty" yaml:"bizMsgIdr,omitempty"`
}
