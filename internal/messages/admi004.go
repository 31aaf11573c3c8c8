package messages

import (
	"fjacquet/iso20022-gen/internal/dateutils"
	"fjacquet/iso20022-gen/internal/models"
	"fjacquet/iso20022-gen/internal/msgerror"
	"fjacquet/iso20022-gen/internal/xmltree"
)

const systemEventMessage = "admi.004"

func (g *Generator) buildSystemEvent(raw []byte, definition string) (Built, error) {
	var p models.SystemEventPayload
	if err := decodePayload(raw, &p); err != nil {
		return Built{}, err
	}
	return g.SystemEvent(p, definition)
}

// SystemEvent builds a SysEvtNtfctn document. The event time defaults to
// now. The header is sent from and to the configured routing number unless
// the payload's appHdr block says otherwise.
func (g *Generator) SystemEvent(p models.SystemEventPayload, definition string) (Built, error) {
	ntfctn := p.Document.Notification()
	if ntfctn == nil {
		return Built{}, &msgerror.RequiredFieldError{Message: systemEventMessage, Field: "Document.SysEvtNtfctn"}
	}
	evt := ntfctn.EvtInf
	if err := checkRequired(systemEventMessage,
		requiredField{"Document.SysEvtNtfctn.EvtInf.EvtCd", evt.EvtCd},
	); err != nil {
		return Built{}, err
	}

	var overrides models.HeaderOverrides
	if p.AppHdr != nil {
		overrides = *p.AppHdr
	}
	bizMsgIdr := overrides.BizMsgIdr
	if bizMsgIdr == "" {
		bizMsgIdr = g.clock().UTC().Format(dateutils.DateLayoutCycle) + evt.EvtCd + g.ids.Alphanumeric(8)
	}

	body := xmltree.NewMapping().Set("Document", xmltree.NewMapping().
		Set("SysEvtNtfctn", xmltree.NewMapping().
			Set("EvtInf", xmltree.NewMapping().
				Set("EvtCd", xmltree.Scalar(evt.EvtCd)).
				Set("EvtParam", xmltree.Text(evt.EvtParam)).
				Set("EvtTm", xmltree.Scalar(firstNonEmpty(evt.EvtTm, g.now()))))))

	return Built{
		Header: Header{
			From:      firstNonEmpty(overrides.From, g.settings.RoutingNumber),
			To:        firstNonEmpty(overrides.To, g.settings.RoutingNumber),
			BizMsgIdr: bizMsgIdr,
			MsgDefIdr: definition,
		},
		Body: body,
	}, nil
}
