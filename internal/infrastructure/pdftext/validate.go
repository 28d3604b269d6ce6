package pdftext

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/garyjia/tally-invoice-extractor/pkg/utils"
)

// StructureValidator checks PDF structure with pdfcpu in relaxed mode
type StructureValidator struct {
	conf *model.Configuration
}

// NewStructureValidator creates a validator using pdfcpu's relaxed rules.
// Generated invoices routinely carry minor PDF deviations that strict mode rejects.
func NewStructureValidator() *StructureValidator {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &StructureValidator{conf: conf}
}

// ValidateStructure returns utils.ErrNotPDF when pdfcpu rejects the document
func (v *StructureValidator) ValidateStructure(content []byte) error {
	if err := api.Validate(bytes.NewReader(content), v.conf); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrNotPDF, err)
	}
	return nil
}
