package domain

import "errors"

// Классы ошибок пайплайна (проверяются через errors.Is).
var (
	ErrSchemaResolution    = errors.New("schema resolution failed")
	ErrWriterSetup         = errors.New("record writer setup failed")
	ErrRecordDecode        = errors.New("record decode failed")
	ErrOutputWrite         = errors.New("output write failed")
	ErrAcknowledge         = errors.New("acknowledge failed")
	ErrBrokerCommunication = errors.New("broker communication failed")
	ErrUnitNotFound        = errors.New("output unit not found")
)
