package ports

import (
	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
)

// TableReaderPort loads a stimulus attribute table from external storage.
type TableReaderPort interface {
	ReadTable(path string) (*sampling.AttributeTable, error)
}
