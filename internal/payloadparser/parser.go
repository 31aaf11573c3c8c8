// Package payloadparser reads generated ISO 20022 messages back into the
// payload structures the message builders accept.
package payloadparser

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fjacquet/iso20022-gen/internal/fileutils"
	"fjacquet/iso20022-gen/internal/logging"
	"fjacquet/iso20022-gen/internal/messages"
	"fjacquet/iso20022-gen/internal/models"
	"fjacquet/iso20022-gen/internal/msgerror"
	"fjacquet/iso20022-gen/internal/xmlutils"

	"gopkg.in/xmlpath.v2"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Encode.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Parser extracts payloads from header/body fragments or complete
// enveloped messages.
type Parser struct {
	logger  logging.Logger
	pacs008 xmlutils.Pacs008
	pacs028 xmlutils.Pacs028
	admi004 xmlutils.Admi004
	appHdr  xmlutils.AppHdr
}

// NewParser creates a Parser. A nil logger is replaced by a default one.
func NewParser(logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Parser{
		logger:  logger,
		pacs008: xmlutils.DefaultPacs008XPaths(),
		pacs028: xmlutils.DefaultPacs028XPaths(),
		admi004: xmlutils.DefaultAdmi004XPaths(),
		appHdr:  xmlutils.DefaultAppHdrXPaths(),
	}
}

// Parse reads XML from r and returns the payload of messageCode: a
// FedwirePayload, StatusRequestPayload or SystemEventPayload.
func (p *Parser) Parse(r io.Reader, messageCode string) (any, error) {
	msgType, err := supportedType(messageCode)
	if err != nil {
		return nil, err
	}
	root, err := xmlutils.ParseXML(r)
	if err != nil {
		return nil, &msgerror.DataExtractionError{Source: "xml", Reason: err.Error()}
	}
	return p.extract(root, msgType)
}

// ParseFile is Parse over the contents of path.
func (p *Parser) ParseFile(path, messageCode string) (any, error) {
	msgType, err := supportedType(messageCode)
	if err != nil {
		return nil, err
	}
	if !fileutils.FileExists(path) {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	root, err := xmlutils.LoadXMLFile(path)
	if err != nil {
		return nil, &msgerror.DataExtractionError{Source: path, Reason: err.Error()}
	}
	p.logger.Debug("Parsed message file", logging.F(logging.FieldInputFile, path))
	return p.extract(root, msgType)
}

func supportedType(messageCode string) (string, error) {
	msgType := messages.TypeOf(messageCode)
	if !messages.IsSupported(msgType) {
		return "", &msgerror.UnsupportedMessageError{MessageCode: messageCode}
	}
	return msgType, nil
}

func (p *Parser) extract(root *xmlpath.Node, msgType string) (any, error) {
	p.logger.Debug("Parsing message", logging.F(logging.FieldMessageType, msgType))

	var payload any
	var err error
	switch msgType {
	case models.MessageTypeCreditTransfer:
		payload, err = p.creditTransfer(root)
	case models.MessageTypeStatusRequest:
		payload, err = p.statusRequest(root)
	default:
		payload, err = p.systemEvent(root)
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Encode is the package-level Encode, exposed for callers holding a Parser.
func (p *Parser) Encode(w io.Writer, payload any, format string) error {
	return Encode(w, payload, format)
}

// Encode writes payload to w as indented JSON or YAML.
func Encode(w io.Writer, payload any, format string) error {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(payload); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported payload format %q", format)
	}
}

func (p *Parser) creditTransfer(root *xmlpath.Node) (models.FedwirePayload, error) {
	x := p.pacs008
	if !xmlutils.Exists(root, x.Document) {
		return models.FedwirePayload{}, missingDocument("FIToFICstmrCdtTrf")
	}

	imad, err := splitMessageID(xmlutils.First(root, x.GroupHeader.MsgID))
	if err != nil {
		return models.FedwirePayload{}, err
	}

	amountText := xmlutils.First(root, x.Payment.Amount)
	money, err := models.NewMoneyFromISO(amountText, xmlutils.First(root, x.Payment.Currency))
	if err != nil {
		return models.FedwirePayload{}, &msgerror.DataExtractionError{
			Source: "xml", FieldName: "IntrBkSttlmAmt", RawDataSnippet: amountText, Reason: err.Error(),
		}
	}
	amount, err := money.ToAmount()
	if err != nil {
		return models.FedwirePayload{}, &msgerror.DataExtractionError{
			Source: "xml", FieldName: "IntrBkSttlmAmt", RawDataSnippet: amountText, Reason: err.Error(),
		}
	}

	return models.FedwirePayload{FedwireMessage: models.FedwireMessage{
		InputMessageAccountabilityData: imad,
		Amount:                         amount,
		SenderDepositoryInstitution: models.SenderDepositoryInstitution{
			SenderABANumber: xmlutils.First(root, x.Agents.InstructingAgent),
			SenderShortName: xmlutils.First(root, x.Agents.DebtorAgentName),
		},
		ReceiverDepositoryInstitution: models.ReceiverDepositoryInstitution{
			ReceiverABANumber: xmlutils.First(root, x.Agents.InstructedAgent),
			ReceiverShortName: xmlutils.First(root, x.Agents.CreditorAgentName),
		},
		Originator: models.Party{Personal: models.Personal{
			Name:       xmlutils.First(root, x.Debtor.Name),
			Identifier: xmlutils.First(root, x.Debtor.Account),
			Address:    models.AddressFromLines(xmlutils.All(root, x.Debtor.AddressLines)),
		}},
		Beneficiary: models.Party{Personal: models.Personal{
			Name:       xmlutils.First(root, x.Creditor.Name),
			Identifier: xmlutils.First(root, x.Creditor.Account),
			Address:    models.AddressFromLines(xmlutils.All(root, x.Creditor.AddressLines)),
		}},
	}}, nil
}

func (p *Parser) statusRequest(root *xmlpath.Node) (models.StatusRequestPayload, error) {
	x := p.pacs028
	if !xmlutils.Exists(root, x.Document) {
		return models.StatusRequestPayload{}, missingDocument("FIToFIPmtStsReq")
	}
	return models.StatusRequestPayload{PaymentStatusRequest: models.StatusRequest{
		MsgID:                    xmlutils.First(root, x.MsgID),
		CreationDateTime:         xmlutils.First(root, x.CreationDateTime),
		OriginalMsgID:            xmlutils.First(root, x.Original.MsgID),
		OriginalMsgNmID:          xmlutils.First(root, x.Original.MsgNmID),
		OriginalCreationDateTime: xmlutils.First(root, x.Original.CreationDateTime),
		OriginalInstrID:          xmlutils.First(root, x.Original.InstrID),
		OriginalEndToEndID:       xmlutils.First(root, x.Original.EndToEndID),
		OriginalUETR:             xmlutils.First(root, x.Original.UETR),
		InstructingAgentABA:      xmlutils.First(root, x.InstructingAgent),
		InstructedAgentABA:       xmlutils.First(root, x.InstructedAgent),
	}}, nil
}

func (p *Parser) systemEvent(root *xmlpath.Node) (models.SystemEventPayload, error) {
	x := p.admi004
	if !xmlutils.Exists(root, x.Document) {
		return models.SystemEventPayload{}, missingDocument("SysEvtNtfctn")
	}

	payload := models.SystemEventPayload{
		Document: models.SystemEventDocument{SysEvtNtfctn: &models.SystemEventNotification{
			EvtInf: models.EventInformation{
				EvtCd:    xmlutils.First(root, x.EventCode),
				EvtParam: xmlutils.First(root, x.EventParm),
				EvtTm:    xmlutils.First(root, x.EventTime),
			},
		}},
	}

	h := models.HeaderOverrides{
		From:      xmlutils.First(root, p.appHdr.From),
		To:        xmlutils.First(root, p.appHdr.To),
		BizMsgIdr: xmlutils.First(root, p.appHdr.BizMsgIdr),
	}
	if h != (models.HeaderOverrides{}) {
		payload.AppHdr = &h
	}
	return payload, nil
}

// splitMessageID reverses IMAD.MessageID: 8-digit cycle date, source,
// 6-digit sequence number.
func splitMessageID(id string) (models.InputMessageAccountabilityData, error) {
	const dateLen, seqLen = 8, 6
	if len(id) <= dateLen+seqLen {
		return models.InputMessageAccountabilityData{}, &msgerror.DataExtractionError{
			Source:         "xml",
			FieldName:      "MsgId",
			RawDataSnippet: id,
			Reason:         fmt.Sprintf("expected more than %d characters", dateLen+seqLen),
		}
	}
	return models.InputMessageAccountabilityData{
		InputCycleDate:      id[:dateLen],
		InputSource:         id[dateLen : len(id)-seqLen],
		InputSequenceNumber: id[len(id)-seqLen:],
	}, nil
}

func missingDocument(element string) error {
	return &msgerror.DataExtractionError{
		Source:    "xml",
		FieldName: element,
		Reason:    "message document not found",
	}
}
