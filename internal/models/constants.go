package models

// Message types handled by the generator, as found in the last segment of
// a message identifier before the variant and version numbers.
const (
	MessageTypeCreditTransfer       = "pacs.008"
	MessageTypeStatusRequest        = "pacs.028"
	MessageTypeSystemEvent          = "admi.004"
	MessageTypeBusinessAppHeader    = "head.001"
	DefaultOriginalMessageNameID    = "pacs.008.001.08"
	ISO20022NamespacePrefix         = "urn:iso:std:iso:20022:tech:xsd:"
	BusinessAppHeaderDefinition     = "head.001.001.03"
	BusinessAppHeaderNamespace      = ISO20022NamespacePrefix + BusinessAppHeaderDefinition
	CreditTransferNamespace         = ISO20022NamespacePrefix + "pacs.008.001.08"
	StatusRequestNamespace          = ISO20022NamespacePrefix + "pacs.028.001.03"
	SystemEventNamespace            = ISO20022NamespacePrefix + "admi.004.001.02"
	ClearingSystemUSABA             = "USABA"
	ClearingSystemFedwire           = "FDW"
	SettlementMethodClearing        = "CLRG"
	ChargeBearerShared              = "SLEV"
	LocalInstrumentCustomerTransfer = "CTRC"
	EndToEndIDPrefix                = "MEtoEID"
	EndToEndIDLength                = 15
	MaxAddressLineLength            = 35
	AddressPlaceholder              = "NA"
)

// Business services
const (
	EnvironmentTest = "TEST"
	EnvironmentProd = "PROD"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionOutputFile = 0644
)
