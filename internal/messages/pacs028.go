package messages

import (
	"fjacquet/iso20022-gen/internal/models"
	"fjacquet/iso20022-gen/internal/xmltree"
)

const statusRequestMessage = "pacs.028"

func (g *Generator) buildStatusRequest(raw []byte, definition string) (Built, error) {
	var p models.StatusRequestPayload
	if err := decodePayload(raw, &p); err != nil {
		return Built{}, err
	}
	return g.StatusRequest(p, definition)
}

// StatusRequest builds a FIToFIPmtStsReq document. The original message
// name defaults to pacs.008.001.08 and both creation times default to now.
// A missing instructed agent is replaced by the configured routing number
// in the header only.
func (g *Generator) StatusRequest(p models.StatusRequestPayload, definition string) (Built, error) {
	req := p.PaymentStatusRequest
	if err := checkRequired(statusRequestMessage,
		requiredField{"paymentStatusRequest.msgId", req.MsgID},
		requiredField{"paymentStatusRequest.originalMsgId", req.OriginalMsgID},
		requiredField{"paymentStatusRequest.instructingAgentABA", req.InstructingAgentABA},
	); err != nil {
		return Built{}, err
	}

	now := g.now()
	orig := req.OriginalMsgNmID
	if orig == "" {
		orig = models.DefaultOriginalMessageNameID
	}

	grpHdr := xmltree.NewMapping().
		Set("MsgId", xmltree.Scalar(req.MsgID)).
		Set("CreDtTm", xmltree.Scalar(firstNonEmpty(req.CreationDateTime, now))).
		Set("NbOfTxs", xmltree.Absent).
		Set("SttlmInf", xmltree.Absent)

	txInf := xmltree.NewMapping().
		Set("OrgnlGrpInf", xmltree.NewMapping().
			Set("OrgnlMsgId", xmltree.Scalar(req.OriginalMsgID)).
			Set("OrgnlMsgNmId", xmltree.Scalar(orig)).
			Set("OrgnlCreDtTm", xmltree.Scalar(firstNonEmpty(req.OriginalCreationDateTime, now)))).
		Set("OrgnlInstrId", xmltree.Text(req.OriginalInstrID)).
		Set("OrgnlEndToEndId", xmltree.Text(req.OriginalEndToEndID)).
		Set("OrgnlUETR", xmltree.Text(req.OriginalUETR)).
		Set("InstgAgt", agent(req.InstructingAgentABA, "")).
		Set("InstdAgt", agent(req.InstructedAgentABA, ""))

	body := xmltree.NewMapping().Set("Document", xmltree.NewMapping().
		Set("FIToFIPmtStsReq", xmltree.NewMapping().
			Set("GrpHdr", grpHdr).
			Set("TxInf", txInf)))

	return Built{
		Header: Header{
			From:      req.InstructingAgentABA,
			To:        firstNonEmpty(req.InstructedAgentABA, g.settings.RoutingNumber),
			BizMsgIdr: req.MsgID,
			MsgDefIdr: definition,
		},
		Body: body,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
