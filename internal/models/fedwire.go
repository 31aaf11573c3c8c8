// Package models provides the payload structures exchanged with the
// message builders and produced by the payload parser.
package models

import (
	"strings"
)

// FedwirePayload is the JSON payload of a customer credit transfer
// (pacs.008) in Fedwire's legacy tag layout.
type FedwirePayload struct {
	FedwireMessage FedwireMessage `json:"fedWireMessage" yaml:"fedWireMessage"`
}

// FedwireMessage holds the fields of one Fedwire funds transfer.
type FedwireMessage struct {
	InputMessageAccountabilityData InputMessageAccountabilityData `json:"inputMessageAccountabilityData" yaml:"inputMessageAccountabilityData"`
	Amount                         Amount                         `json:"amount" yaml:"amount"`
	SenderDepositoryInstitution    SenderDepositoryInstitution    `json:"senderDepositoryInstitution" yaml:"senderDepositoryInstitution"`
	ReceiverDepositoryInstitution  ReceiverDepositoryInstitution  `json:"receiverDepositoryInstitution" yaml:"receiverDepositoryInstitution"`
	Originator                     Party                          `json:"originator" yaml:"originator"`
	Beneficiary                    Party                          `json:"beneficiary" yaml:"beneficiary"`
}

// InputMessageAccountabilityData is the IMAD; its three parts concatenated
// form the message id.
type InputMessageAccountabilityData struct {
	InputCycleDate      string `json:"inputCycleDate" yaml:"inputCycleDate"`
	InputSource         string `json:"inputSource" yaml:"inputSource"`
	InputSequenceNumber string `json:"inputSequenceNumber" yaml:"inputSequenceNumber"`
}

// MessageID returns cycle date + source + sequence number.
func (i InputMessageAccountabilityData) MessageID() string {
	return i.InputCycleDate + i.InputSource + i.InputSequenceNumber
}

// Amount is a Fedwire amount in zero-padded minor units.
type Amount struct {
	Amount   string `json:"amount" yaml:"amount"`
	Currency string `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// SenderDepositoryInstitution identifies the sending bank.
type SenderDepositoryInstitution struct {
	SenderABANumber string `json:"senderABANumber" yaml:"senderABANumber"`
	SenderShortName string `json:"senderShortName,omitempty" yaml:"senderShortName,omitempty"`
}

// ReceiverDepositoryInstitution identifies the receiving bank.
type ReceiverDepositoryInstitution struct {
	ReceiverABANumber string `json:"receiverABANumber" yaml:"receiverABANumber"`
	ReceiverShortName string `json:"receiverShortName,omitempty" yaml:"receiverShortName,omitempty"`
}

// Party is the originator or beneficiary of a transfer.
type Party struct {
	Personal Personal `json:"personal" yaml:"personal"`
}

// Personal carries a party's name, account identifier and address.
type Personal struct {
	Name       string  `json:"name" yaml:"name"`
	Identifier string  `json:"identifier" yaml:"identifier"`
	Address    Address `json:"address" yaml:"address"`
}

// Address holds up to three free-form address lines.
type Address struct {
	AddressLineOne   string `json:"addressLineOne,omitempty" yaml:"addressLineOne,omitempty"`
	AddressLineTwo   string `json:"addressLineTwo,omitempty" yaml:"addressLineTwo,omitempty"`
	AddressLineThree string `json:"addressLineThree,omitempty" yaml:"addressLineThree,omitempty"`
}

// Lines returns the address as ISO 20022 AdrLine values: placeholder "NA"
// words removed, trimmed, cut to 35 characters, empty lines dropped.
func (a Address) Lines() []string {
	var lines []string
	for _, raw := range []string{a.AddressLineOne, a.AddressLineTwo, a.AddressLineThree} {
		if line := CleanAddressLine(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// AddressFromLines is the inverse of Lines for at most three lines.
func AddressFromLines(lines []string) Address {
	var a Address
	fields := []*string{&a.AddressLineOne, &a.AddressLineTwo, &a.AddressLineThree}
	for i, line := range lines {
		if i >= len(fields) {
			break
		}
		*fields[i] = line
	}
	return a
}

// CleanAddressLine normalizes one address line.
func CleanAddressLine(line string) string {
	words := strings.Fields(line)
	kept := words[:0]
	for _, w := range words {
		if w != AddressPlaceholder {
			kept = append(kept, w)
		}
	}
	cleaned := strings.Join(kept, " ")
	if r := []rune(cleaned); len(r) > MaxAddressLineLength {
		cleaned = strings.TrimSpace(string(r[:MaxAddressLineLength]))
	}
	return cleaned
}
