package ptp

import "fmt"

// 操作码
const (
	OC_Undefined            = uint16(0x1000)
	OC_GetDeviceInfo        = uint16(0x1001)
	OC_OpenSession          = uint16(0x1002)
	OC_CloseSession         = uint16(0x1003)
	OC_GetStorageIDs        = uint16(0x1004)
	OC_GetStorageInfo       = uint16(0x1005)
	OC_GetNumObjects        = uint16(0x1006)
	OC_GetObjectHandles     = uint16(0x1007)
	OC_GetObjectInfo        = uint16(0x1008)
	OC_GetObject            = uint16(0x1009)
	OC_GetThumb             = uint16(0x100A)
	OC_DeleteObject         = uint16(0x100B)
	OC_SendObjectInfo       = uint16(0x100C)
	OC_SendObject           = uint16(0x100D)
	OC_InitiateCapture      = uint16(0x100E)
	OC_FormatStore          = uint16(0x100F)
	OC_ResetDevice          = uint16(0x1010)
	OC_SelfTest             = uint16(0x1011)
	OC_SetObjectProtection  = uint16(0x1012)
	OC_PowerDown            = uint16(0x1013)
	OC_GetDevicePropDesc    = uint16(0x1014)
	OC_GetDevicePropValue   = uint16(0x1015)
	OC_SetDevicePropValue   = uint16(0x1016)
	OC_ResetDevicePropValue = uint16(0x1017)
	OC_TerminateOpenCapture = uint16(0x1018)
	OC_MoveObject           = uint16(0x1019)
	OC_CopyObject           = uint16(0x101A)
	OC_GetPartialObject     = uint16(0x101B)
	OC_InitiateOpenCapture  = uint16(0x101C)
	OC_CHDK                 = uint16(0x9999) // CHDK 扩展，参数0为子命令
)

// 响应码
const (
	RC_Undefined                = uint16(0x2000)
	RC_OK                       = uint16(0x2001)
	RC_GeneralError             = uint16(0x2002)
	RC_SessionNotOpen           = uint16(0x2003)
	RC_InvalidTransactionID     = uint16(0x2004)
	RC_OperationNotSupported    = uint16(0x2005)
	RC_ParameterNotSupported    = uint16(0x2006)
	RC_IncompleteTransfer       = uint16(0x2007)
	RC_InvalidStorageId         = uint16(0x2008)
	RC_InvalidObjectHandle      = uint16(0x2009)
	RC_DevicePropNotSupported   = uint16(0x200A)
	RC_InvalidObjectFormatCode  = uint16(0x200B)
	RC_StoreFull                = uint16(0x200C)
	RC_ObjectWriteProtected     = uint16(0x200D)
	RC_StoreReadOnly            = uint16(0x200E)
	RC_AccessDenied             = uint16(0x200F)
	RC_NoThumbnailPresent       = uint16(0x2010)
	RC_SelfTestFailed           = uint16(0x2011)
	RC_PartialDeletion          = uint16(0x2012)
	RC_StoreNotAvailable        = uint16(0x2013)
	RC_SpecificationByFormatUns = uint16(0x2014)
	RC_NoValidObjectInfo        = uint16(0x2015)
	RC_InvalidCodeFormat        = uint16(0x2016)
	RC_UnknownVendorCode        = uint16(0x2017)
	RC_CaptureAlreadyTerminated = uint16(0x2018)
	RC_DeviceBusy               = uint16(0x2019)
	RC_InvalidParentObject      = uint16(0x201A)
	RC_InvalidDevicePropFormat  = uint16(0x201B)
	RC_InvalidDevicePropValue   = uint16(0x201C)
	RC_InvalidParameter         = uint16(0x201D)
	RC_SessionAlreadyOpen       = uint16(0x201E)
	RC_TransactionCancelled     = uint16(0x201F)
	RC_SpecificationOfDestUns   = uint16(0x2020)
)

// 事件码
const (
	EC_Undefined              = uint16(0x4000)
	EC_CancelTransaction      = uint16(0x4001)
	EC_ObjectAdded            = uint16(0x4002)
	EC_ObjectRemoved          = uint16(0x4003)
	EC_StoreAdded             = uint16(0x4004)
	EC_StoreRemoved           = uint16(0x4005)
	EC_DevicePropChanged      = uint16(0x4006)
	EC_ObjectInfoChanged      = uint16(0x4007)
	EC_DeviceInfoChanged      = uint16(0x4008)
	EC_RequestObjectTransfer  = uint16(0x4009)
	EC_StoreFull              = uint16(0x400A)
	EC_DeviceReset            = uint16(0x400B)
	EC_StorageInfoChanged     = uint16(0x400C)
	EC_CaptureComplete        = uint16(0x400D)
	EC_UnreportedStatus       = uint16(0x400E)
)

// CHDK 子命令
const (
	CHDK_Version = uint32(0)
)

// CodeMap 操作码、响应码、事件码的名称，三者取值范围互不重叠
var CodeMap = make(map[uint16]string)

func init() {
	CodeMap[OC_Undefined] = "Undefined"
	CodeMap[OC_GetDeviceInfo] = "GetDeviceInfo"
	CodeMap[OC_OpenSession] = "OpenSession"
	CodeMap[OC_CloseSession] = "CloseSession"
	CodeMap[OC_GetStorageIDs] = "GetStorageIDs"
	CodeMap[OC_GetStorageInfo] = "GetStorageInfo"
	CodeMap[OC_GetNumObjects] = "GetNumObjects"
	CodeMap[OC_GetObjectHandles] = "GetObjectHandles"
	CodeMap[OC_GetObjectInfo] = "GetObjectInfo"
	CodeMap[OC_GetObject] = "GetObject"
	CodeMap[OC_GetThumb] = "GetThumb"
	CodeMap[OC_DeleteObject] = "DeleteObject"
	CodeMap[OC_SendObjectInfo] = "SendObjectInfo"
	CodeMap[OC_SendObject] = "SendObject"
	CodeMap[OC_InitiateCapture] = "InitiateCapture"
	CodeMap[OC_FormatStore] = "FormatStore"
	CodeMap[OC_ResetDevice] = "ResetDevice"
	CodeMap[OC_SelfTest] = "SelfTest"
	CodeMap[OC_SetObjectProtection] = "SetObjectProtection"
	CodeMap[OC_PowerDown] = "PowerDown"
	CodeMap[OC_GetDevicePropDesc] = "GetDevicePropDesc"
	CodeMap[OC_GetDevicePropValue] = "GetDevicePropValue"
	CodeMap[OC_SetDevicePropValue] = "SetDevicePropValue"
	CodeMap[OC_ResetDevicePropValue] = "ResetDevicePropValue"
	CodeMap[OC_TerminateOpenCapture] = "TerminateOpenCapture"
	CodeMap[OC_MoveObject] = "MoveObject"
	CodeMap[OC_CopyObject] = "CopyObject"
	CodeMap[OC_GetPartialObject] = "GetPartialObject"
	CodeMap[OC_InitiateOpenCapture] = "InitiateOpenCapture"
	CodeMap[OC_CHDK] = "CHDK"

	CodeMap[RC_Undefined] = "Undefined"
	CodeMap[RC_OK] = "OK"
	CodeMap[RC_GeneralError] = "GeneralError"
	CodeMap[RC_SessionNotOpen] = "SessionNotOpen"
	CodeMap[RC_InvalidTransactionID] = "InvalidTransactionID"
	CodeMap[RC_OperationNotSupported] = "OperationNotSupported"
	CodeMap[RC_ParameterNotSupported] = "ParameterNotSupported"
	CodeMap[RC_IncompleteTransfer] = "IncompleteTransfer"
	CodeMap[RC_InvalidStorageId] = "InvalidStorageId"
	CodeMap[RC_InvalidObjectHandle] = "InvalidObjectHandle"
	CodeMap[RC_DevicePropNotSupported] = "DevicePropNotSupported"
	CodeMap[RC_InvalidObjectFormatCode] = "InvalidObjectFormatCode"
	CodeMap[RC_StoreFull] = "StoreFull"
	CodeMap[RC_ObjectWriteProtected] = "ObjectWriteProtected"
	CodeMap[RC_StoreReadOnly] = "StoreReadOnly"
	CodeMap[RC_AccessDenied] = "AccessDenied"
	CodeMap[RC_NoThumbnailPresent] = "NoThumbnailPresent"
	CodeMap[RC_SelfTestFailed] = "SelfTestFailed"
	CodeMap[RC_PartialDeletion] = "PartialDeletion"
	CodeMap[RC_StoreNotAvailable] = "StoreNotAvailable"
	CodeMap[RC_SpecificationByFormatUns] = "SpecificationByFormatUnsupported"
	CodeMap[RC_NoValidObjectInfo] = "NoValidObjectInfo"
	CodeMap[RC_InvalidCodeFormat] = "InvalidCodeFormat"
	CodeMap[RC_UnknownVendorCode] = "UnknownVendorCode"
	CodeMap[RC_CaptureAlreadyTerminated] = "CaptureAlreadyTerminated"
	CodeMap[RC_DeviceBusy] = "DeviceBusy"
	CodeMap[RC_InvalidParentObject] = "InvalidParentObject"
	CodeMap[RC_InvalidDevicePropFormat] = "InvalidDevicePropFormat"
	CodeMap[RC_InvalidDevicePropValue] = "InvalidDevicePropValue"
	CodeMap[RC_InvalidParameter] = "InvalidParameter"
	CodeMap[RC_SessionAlreadyOpen] = "SessionAlreadyOpen"
	CodeMap[RC_TransactionCancelled] = "TransactionCancelled"
	CodeMap[RC_SpecificationOfDestUns] = "SpecificationOfDestinationUnsupported"

	CodeMap[EC_Undefined] = "Undefined"
	CodeMap[EC_CancelTransaction] = "CancelTransaction"
	CodeMap[EC_ObjectAdded] = "ObjectAdded"
	CodeMap[EC_ObjectRemoved] = "ObjectRemoved"
	CodeMap[EC_StoreAdded] = "StoreAdded"
	CodeMap[EC_StoreRemoved] = "StoreRemoved"
	CodeMap[EC_DevicePropChanged] = "DevicePropChanged"
	CodeMap[EC_ObjectInfoChanged] = "ObjectInfoChanged"
	CodeMap[EC_DeviceInfoChanged] = "DeviceInfoChanged"
	CodeMap[EC_RequestObjectTransfer] = "RequestObjectTransfer"
	CodeMap[EC_StoreFull] = "StoreFull"
	CodeMap[EC_DeviceReset] = "DeviceReset"
	CodeMap[EC_StorageInfoChanged] = "StorageInfoChanged"
	CodeMap[EC_CaptureComplete] = "CaptureComplete"
	CodeMap[EC_UnreportedStatus] = "UnreportedStatus"
}

func CodeName(code uint16) string {
	if n, ok := CodeMap[code]; ok {
		return n
	}
	return fmt.Sprintf("0x%04x", code)
}
