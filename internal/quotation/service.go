package quotation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/promostore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/promostore-backend/pkg/errors"
	"github.com/angelmondragon/promostore-backend/pkg/logger"
)

// Output formats accepted by Generate.
const (
	FormatJSON = "json"
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// ExportObserver receives export timings for metrics.
type ExportObserver interface {
	ObserveExport(format string, elapsed time.Duration, err error)
}

// Service drafts and generates quotations.
type Service interface {
	Draft(productID int) Draft
	Generate(ctx context.Context, productID int, fields map[string]string, format string) (Result, error)
}

// Draft is the prefilled form plus the schema needed to render it.
type Draft struct {
	ProductID int                      `json:"productId"`
	Found     bool                     `json:"found"`
	Form      Form                     `json:"form"`
	Fields    []FieldSpec              `json:"fields"`
	Groups    [][]enums.QuotationField `json:"groups"`
}

// Result carries the document and, for html/pdf, the exported bytes.
type Result struct {
	Document    Document
	Format      string
	Body        []byte
	ContentType string
}

// ServiceParams wires the quotation service.
type ServiceParams struct {
	Catalog       productLookup
	Exporters     map[string]Exporter
	DefaultFormat string
	Logger        *logger.Logger
	Observer      ExportObserver
	Now           func() time.Time
}

type service struct {
	catalog       productLookup
	exporters     map[string]Exporter
	defaultFormat string
	logg          *logger.Logger
	observer      ExportObserver
	now           func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	format := strings.ToLower(strings.TrimSpace(params.DefaultFormat))
	if format == "" {
		format = FormatHTML
	}
	if _, ok := params.Exporters[format]; !ok {
		return nil, fmt.Errorf("no exporter for default format %q", format)
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		catalog:       params.Catalog,
		exporters:     params.Exporters,
		defaultFormat: format,
		logg:          params.Logger,
		observer:      params.Observer,
		now:           now,
	}, nil
}

func (s *service) Draft(productID int) Draft {
	_, found := s.catalog.Product(productID)
	return Draft{
		ProductID: productID,
		Found:     found,
		Form:      Seed(s.catalog, productID),
		Fields:    Schema(),
		Groups:    InputGroups(),
	}
}

func (s *service) Generate(ctx context.Context, productID int, fields map[string]string, format string) (Result, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = s.defaultFormat
	}
	exporter, ok := s.exporters[format]
	if !ok && format != FormatJSON {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "unsupported quotation format").
			WithDetails(map[string]any{"format": format})
	}

	form, err := Apply(Seed(s.catalog, productID), fields)
	if err != nil {
		return Result{}, err
	}
	if err := Validate(form); err != nil {
		return Result{}, err
	}

	doc := Document{
		Reference: newReference(),
		IssuedAt:  s.now().UTC(),
		Summary:   Summarize(form),
	}
	result := Result{Document: doc, Format: format}
	if format == FormatJSON {
		return result, nil
	}

	started := time.Now()
	body, contentType, err := exporter.Export(ctx, doc)
	if s.observer != nil {
		s.observer.ObserveExport(format, time.Since(started), err)
	}
	if err != nil {
		if s.logg != nil {
			lctx := s.logg.WithFields(ctx, map[string]any{"format": format, "reference": doc.Reference})
			s.logg.Error(lctx, "quotation.export_failed", err)
		}
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "quotation export failed")
	}
	result.Body = body
	result.ContentType = contentType
	return result, nil
}

func newReference() string {
	return "COT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}
