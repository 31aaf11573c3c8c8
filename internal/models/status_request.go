package models

// StatusRequestPayload is the JSON payload of a payment status request
// (pacs.028).
type StatusRequestPayload struct {
	PaymentStatusRequest StatusRequest `json:"paymentStatusRequest" yaml:"paymentStatusRequest"`
}

// StatusRequest identifies the original message being queried. The
// instructing agent is the sender of the request and the instructed agent
// its receiver.
type StatusRequest struct {
	MsgID                    string `json:"msgId" yaml:"msgId"`
	CreationDateTime         string `json:"creationDateTime,omitempty" yaml:"creationDateTime,omitempty"`
	OriginalMsgID            string `json:"originalMsgId" yaml:"originalMsgId"`
	OriginalMsgNmID          string `json:"originalMsgNmId,omitempty" yaml:"originalMsgNmId,omitempty"`
	OriginalCreationDateTime string `json:"originalCreationDateTime,omitempty" yaml:"originalCreationDateTime,omitempty"`
	OriginalInstrID          string `json:"originalInstrId,omitempty" yaml:"originalInstrId,omitempty"`
	OriginalEndToEndID       string `json:"originalEndToEndId,omitempty" yaml:"originalEndToEndId,omitempty"`
	OriginalUETR             string `json:"originalUETR,omitempty" yaml:"originalUETR,omitempty"`
	InstructingAgentABA      string `json:"instructingAgentABA,omitempty" yaml:"instructingAgentABA,omitempty"`
	InstructedAgentABA       string `json:"instructedAgentABA,omitempty" yaml:"instructedAgentABA,omitempty"`
}
