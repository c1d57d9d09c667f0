package sheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/Real-Lux/Farm-App-sub001/internal/config"
	"github.com/Real-Lux/Farm-App-sub001/internal/domain/models"
)

const (
	ordersWriteRange = "Orders!A:H"
	dateLayout       = "2006-01-02"
)

// Ledger defines the export operations supported by the spreadsheet adapter.
type Ledger interface {
	AppendOrder(ctx context.Context, record models.OrderRecord) error
}

// GoogleSheetLedger appends confirmed orders to a spreadsheet using the
// official Google Sheets API. It is the bookkeeping export channel; Mongo
// remains the system of record.
type GoogleSheetLedger struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetLedger builds a Google Sheets backed ledger instance.
func NewGoogleSheetLedger(ctx context.Context, cfg config.LedgerConfig, logger *zap.Logger) (Ledger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetLedger{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendOrder writes one summary row per confirmed order.
func (l *GoogleSheetLedger) AppendOrder(ctx context.Context, record models.OrderRecord) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{orderRow(record)}}

	call := l.service.Spreadsheets.Values.Append(l.spreadsheetID, ordersWriteRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append order %s into ledger: %w", record.ID, err)
	}

	l.logger.Debug("order appended to ledger", zap.String("order_id", record.ID))
	return nil
}

func orderRow(record models.OrderRecord) []interface{} {
	lines := make([]string, 0, len(record.Breakdown.Lines))
	for _, priced := range record.Breakdown.Lines {
		lines = append(lines, fmt.Sprintf("%dx %s (%s) @ %s",
			priced.Line.Quantity, priced.Line.Race, priced.Line.SexPreference, priced.UnitPrice.String()))
	}
	for _, product := range record.Breakdown.ProductLines {
		lines = append(lines, fmt.Sprintf("%dx %s @ %s",
			product.Quantity, product.Product.Name, product.Product.UnitPrice.String()))
	}

	collection := ""
	if record.SuggestedCollectionDate != nil {
		collection = record.SuggestedCollectionDate.Format(dateLayout)
	}
	delivery := ""
	if record.DeliveryDate != nil {
		delivery = record.DeliveryDate.Format(dateLayout)
	}

	return []interface{}{
		record.CreatedAt.Format(dateLayout),
		record.ID,
		record.Client,
		strings.Join(lines, "; "),
		record.Breakdown.GrandTotal.String(),
		delivery,
		collection,
		strings.Join(record.Breakdown.MissingPricingSpecies, ", "),
	}
}
