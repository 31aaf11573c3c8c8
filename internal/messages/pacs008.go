package messages

import (
	"fjacquet/iso20022-gen/internal/dateutils"
	"fjacquet/iso20022-gen/internal/models"
	"fjacquet/iso20022-gen/internal/msgerror"
	"fjacquet/iso20022-gen/internal/xmltree"
)

const creditTransferMessage = "pacs.008"

func (g *Generator) buildCreditTransfer(raw []byte, definition string) (Built, error) {
	var p models.FedwirePayload
	if err := decodePayload(raw, &p); err != nil {
		return Built{}, err
	}
	return g.CreditTransfer(p, definition)
}

// CreditTransfer builds a FIToFICstmrCdtTrf document from a Fedwire
// payload. definition is the body's message definition identifier, used as
// the header's MsgDefIdr.
func (g *Generator) CreditTransfer(p models.FedwirePayload, definition string) (Built, error) {
	msg := p.FedwireMessage
	imad := msg.InputMessageAccountabilityData
	if err := checkRequired(creditTransferMessage,
		requiredField{"fedWireMessage.inputMessageAccountabilityData.inputCycleDate", imad.InputCycleDate},
		requiredField{"fedWireMessage.inputMessageAccountabilityData.inputSource", imad.InputSource},
		requiredField{"fedWireMessage.inputMessageAccountabilityData.inputSequenceNumber", imad.InputSequenceNumber},
		requiredField{"fedWireMessage.amount.amount", msg.Amount.Amount},
		requiredField{"fedWireMessage.senderDepositoryInstitution.senderABANumber", msg.SenderDepositoryInstitution.SenderABANumber},
		requiredField{"fedWireMessage.receiverDepositoryInstitution.receiverABANumber", msg.ReceiverDepositoryInstitution.ReceiverABANumber},
		requiredField{"fedWireMessage.originator.personal.name", msg.Originator.Personal.Name},
		requiredField{"fedWireMessage.beneficiary.personal.name", msg.Beneficiary.Personal.Name},
	); err != nil {
		return Built{}, err
	}

	settlementDate, err := dateutils.CycleDateToISO(imad.InputCycleDate)
	if err != nil {
		return Built{}, &msgerror.DataExtractionError{
			Source:         "payload",
			FieldName:      "inputCycleDate",
			RawDataSnippet: imad.InputCycleDate,
			Reason:         err.Error(),
		}
	}
	money, err := models.NewMoneyFromAmount(msg.Amount)
	if err != nil {
		return Built{}, &msgerror.DataExtractionError{
			Source:         "payload",
			FieldName:      "amount",
			RawDataSnippet: msg.Amount.Amount,
			Reason:         err.Error(),
		}
	}

	messageID := imad.MessageID()
	sender := msg.SenderDepositoryInstitution
	receiver := msg.ReceiverDepositoryInstitution

	amount := func() *xmltree.Mapping {
		return xmltree.NewMapping().
			Set("@Ccy", xmltree.Scalar(money.Currency)).
			Set("#text", xmltree.Scalar(money.ISOText()))
	}

	grpHdr := xmltree.NewMapping().
		Set("MsgId", xmltree.Scalar(messageID)).
		Set("CreDtTm", xmltree.Scalar(g.now())).
		Set("NbOfTxs", xmltree.Scalar("1")).
		Set("SttlmInf", xmltree.NewMapping().
			Set("SttlmMtd", xmltree.Scalar(models.SettlementMethodClearing)).
			Set("ClrSys", xmltree.NewMapping().Set("Cd", xmltree.Scalar(models.ClearingSystemFedwire))))

	endToEndID := models.EndToEndIDPrefix + g.ids.Alphanumeric(models.EndToEndIDLength-len(models.EndToEndIDPrefix))

	txInf := xmltree.NewMapping().
		Set("PmtId", xmltree.NewMapping().
			Set("EndToEndId", xmltree.Scalar(endToEndID)).
			Set("UETR", xmltree.Scalar(g.ids.UETR()))).
		Set("PmtTpInf", xmltree.NewMapping().
			Set("LclInstrm", xmltree.NewMapping().Set("Prtry", xmltree.Scalar(models.LocalInstrumentCustomerTransfer)))).
		Set("IntrBkSttlmAmt", amount()).
		Set("IntrBkSttlmDt", xmltree.Scalar(settlementDate)).
		Set("InstdAmt", amount()).
		Set("ChrgBr", xmltree.Scalar(models.ChargeBearerShared)).
		Set("InstgAgt", agent(sender.SenderABANumber, "")).
		Set("InstdAgt", agent(receiver.ReceiverABANumber, "")).
		Set("Dbtr", party(msg.Originator.Personal)).
		Set("DbtrAcct", account(msg.Originator.Personal.Identifier)).
		Set("DbtrAgt", agent(sender.SenderABANumber, sender.SenderShortName)).
		Set("CdtrAgt", agent(receiver.ReceiverABANumber, receiver.ReceiverShortName)).
		Set("Cdtr", party(msg.Beneficiary.Personal)).
		Set("CdtrAcct", account(msg.Beneficiary.Personal.Identifier))

	body := xmltree.NewMapping().Set("Document", xmltree.NewMapping().
		Set("FIToFICstmrCdtTrf", xmltree.NewMapping().
			Set("GrpHdr", grpHdr).
			Set("CdtTrfTxInf", txInf)))

	return Built{
		Header: Header{
			From:      sender.SenderABANumber,
			To:        receiver.ReceiverABANumber,
			BizMsgIdr: messageID,
			MsgDefIdr: definition,
		},
		Body: body,
	}, nil
}

func party(p models.Personal) *xmltree.Mapping {
	return xmltree.NewMapping().
		Set("Nm", xmltree.Text(p.Name)).
		Set("PstlAdr", postalAddress(p.Address.Lines()))
}

func account(identifier string) xmltree.Node {
	if identifier == "" {
		return xmltree.Absent
	}
	return xmltree.NewMapping().Set("Id", xmltree.NewMapping().
		Set("Othr", xmltree.NewMapping().Set("Id", xmltree.Scalar(identifier))))
}
