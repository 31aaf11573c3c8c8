package xmlutils

// XPath expressions address elements by local name only, so the same
// expressions work on prefixed fragments, default-namespace documents and
// complete enveloped messages.

// Pacs008 contains the XPath expressions used to read a customer credit
// transfer.
type Pacs008 struct {
	Document string

	GroupHeader struct {
		MsgID            string
		CreationDateTime string
		NbOfTxs          string
		SettlementMethod string
	}

	Payment struct {
		EndToEndID     string
		UETR           string
		Amount         string
		Currency       string
		SettlementDate string
	}

	Agents struct {
		InstructingAgent  string
		InstructedAgent   string
		DebtorAgentName   string
		CreditorAgentName string
	}

	Debtor struct {
		Name         string
		Account      string
		AddressLines string
	}

	Creditor struct {
		Name         string
		Account      string
		AddressLines string
	}
}

// DefaultPacs008XPaths returns the XPath expressions for pacs.008.
func DefaultPacs008XPaths() Pacs008 {
	p := Pacs008{Document: "//FIToFICstmrCdtTrf"}

	p.GroupHeader.MsgID = "//FIToFICstmrCdtTrf/GrpHdr/MsgId"
	p.GroupHeader.CreationDateTime = "//FIToFICstmrCdtTrf/GrpHdr/CreDtTm"
	p.GroupHeader.NbOfTxs = "//FIToFICstmrCdtTrf/GrpHdr/NbOfTxs"
	p.GroupHeader.SettlementMethod = "//FIToFICstmrCdtTrf/GrpHdr/SttlmInf/SttlmMtd"

	p.Payment.EndToEndID = "//CdtTrfTxInf/PmtId/EndToEndId"
	p.Payment.UETR = "//CdtTrfTxInf/PmtId/UETR"
	p.Payment.Amount = "//CdtTrfTxInf/IntrBkSttlmAmt"
	p.Payment.Currency = "//CdtTrfTxInf/IntrBkSttlmAmt/@Ccy"
	p.Payment.SettlementDate = "//CdtTrfTxInf/IntrBkSttlmDt"

	p.Agents.InstructingAgent = "//CdtTrfTxInf/InstgAgt/FinInstnId/ClrSysMmbId/MmbId"
	p.Agents.InstructedAgent = "//CdtTrfTxInf/InstdAgt/FinInstnId/ClrSysMmbId/MmbId"
	p.Agents.DebtorAgentName = "//CdtTrfTxInf/DbtrAgt/FinInstnId/Nm"
	p.Agents.CreditorAgentName = "//CdtTrfTxInf/CdtrAgt/FinInstnId/Nm"

	p.Debtor.Name = "//CdtTrfTxInf/Dbtr/Nm"
	p.Debtor.Account = "//CdtTrfTxInf/DbtrAcct/Id/Othr/Id"
	p.Debtor.AddressLines = "//CdtTrfTxInf/Dbtr/PstlAdr/AdrLine"

	p.Creditor.Name = "//CdtTrfTxInf/Cdtr/Nm"
	p.Creditor.Account = "//CdtTrfTxInf/CdtrAcct/Id/Othr/Id"
	p.Creditor.AddressLines = "//CdtTrfTxInf/Cdtr/PstlAdr/AdrLine"

	return p
}

// Pacs028 contains the XPath expressions used to read a payment status
// request.
type Pacs028 struct {
	Document         string
	MsgID            string
	CreationDateTime string

	Original struct {
		MsgID            string
		MsgNmID          string
		CreationDateTime string
		InstrID          string
		EndToEndID       string
		UETR             string
	}

	InstructingAgent string
	InstructedAgent  string
}

// DefaultPacs028XPaths returns the XPath expressions for pacs.028.
func DefaultPacs028XPaths() Pacs028 {
	p := Pacs028{
		Document:         "//FIToFIPmtStsReq",
		MsgID:            "//FIToFIPmtStsReq/GrpHdr/MsgId",
		CreationDateTime: "//FIToFIPmtStsReq/GrpHdr/CreDtTm",
		InstructingAgent: "//FIToFIPmtStsReq/TxInf/InstgAgt/FinInstnId/ClrSysMmbId/MmbId",
		InstructedAgent:  "//FIToFIPmtStsReq/TxInf/InstdAgt/FinInstnId/ClrSysMmbId/MmbId",
	}
	p.Original.MsgID = "//FIToFIPmtStsReq/TxInf/OrgnlGrpInf/OrgnlMsgId"
	p.Original.MsgNmID = "//FIToFIPmtStsReq/TxInf/OrgnlGrpInf/OrgnlMsgNmId"
	p.Original.CreationDateTime = "//FIToFIPmtStsReq/TxInf/OrgnlGrpInf/OrgnlCreDtTm"
	p.Original.InstrID = "//FIToFIPmtStsReq/TxInf/OrgnlInstrId"
	p.Original.EndToEndID = "//FIToFIPmtStsReq/TxInf/OrgnlEndToEndId"
	p.Original.UETR = "//FIToFIPmtStsReq/TxInf/OrgnlUETR"
	return p
}

// Admi004 contains the XPath expressions used to read a system event
// notification.
type Admi004 struct {
	Document  string
	EventCode string
	EventParm string
	EventTime string
}

// DefaultAdmi004XPaths returns the XPath expressions for admi.004.
func DefaultAdmi004XPaths() Admi004 {
	return Admi004{
		Document:  "//SysEvtNtfctn",
		EventCode: "//SysEvtNtfctn/EvtInf/EvtCd",
		EventParm: "//SysEvtNtfctn/EvtInf/EvtParam",
		EventTime: "//SysEvtNtfctn/EvtInf/EvtTm",
	}
}

// AppHdr contains the XPath expressions for the business application
// header.
type AppHdr struct {
	From      string
	To        string
	BizMsgIdr string
	MsgDefIdr string
	BizSvc    string
	CreDt     string
}

// DefaultAppHdrXPaths returns the XPath expressions for head.001.
func DefaultAppHdrXPaths() AppHdr {
	return AppHdr{
		From:      "//AppHdr/Fr/FIId/FinInstnId/ClrSysMmbId/MmbId",
		To:        "//AppHdr/To/FIId/FinInstnId/ClrSysMmbId/MmbId",
		BizMsgIdr: "//AppHdr/BizMsgIdr",
		MsgDefIdr: "//AppHdr/MsgDefIdr",
		BizSvc:    "//AppHdr/BizSvc",
		CreDt:     "//AppHdr/CreDt",
	}
}
