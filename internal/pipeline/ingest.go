package pipeline

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"go-sales-stats/internal/model"
	"go-sales-stats/internal/store"
	"go-sales-stats/pkg/utils"
)

// GenericRecord is one CSV row keyed by normalized header
type GenericRecord map[string]string

// ErrUnknownSourceType is returned for a source type other than csv, json or sqlite.
var ErrUnknownSourceType = errors.New("unknown source type")

// IngestProducts reads products from a csv, json or sqlite source. Rows that
// cannot be decoded are rejected through the tracker; the rest are returned.
func IngestProducts(ctx context.Context, src model.Source, tracker *Tracker) ([]model.Product, error) {
	return ingest(ctx, src, tracker, decodeProduct, func(ctx context.Context, s *store.Store) ([]model.Product, error) {
		return s.LoadProducts(ctx)
	})
}

// IngestSales reads sales order details from a csv, json or sqlite source.
func IngestSales(ctx context.Context, src model.Source, tracker *Tracker) ([]model.SalesOrderDetail, error) {
	return ingest(ctx, src, tracker, decodeSale, func(ctx context.Context, s *store.Store) ([]model.SalesOrderDetail, error) {
		return s.LoadSales(ctx)
	})
}

func ingest[T any](
	ctx context.Context,
	src model.Source,
	tracker *Tracker,
	decode func(GenericRecord) (T, error),
	load func(context.Context, *store.Store) ([]T, error),
) ([]T, error) {
	switch strings.ToLower(src.Type) {
	case "csv":
		rc, err := openSource(ctx, src.URL)
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		rows, err := readCSV(ctx, src.URL, rc, tracker)
		if err != nil {
			return nil, err
		}
		out := make([]T, 0, len(rows))
		for i, row := range rows {
			rec, err := decode(row)
			if err != nil {
				// +2: header line and 1-based numbering
				tracker.Reject(stageIngestion, fmt.Errorf("%s line %d: %w", src.URL, i+2, err))
				continue
			}
			out = append(out, rec)
		}
		return out, nil
	case "json", "api":
		rc, err := openSource(ctx, src.URL)
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		var out []T
		if err := json.NewDecoder(rc).Decode(&out); err != nil {
			return nil, fmt.Errorf("failed to decode JSON from %s: %w", src.URL, err)
		}
		return out, nil
	case "sqlite":
		s, err := store.OpenExisting(ctx, src.URL)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return load(ctx, s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSourceType, src.Type)
	}
}

// openSource opens a local file or fetches an http(s) URL
func openSource(ctx context.Context, pathOrURL string) (io.ReadCloser, error) {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pathOrURL, nil)
		if err != nil {
			return nil, fmt.Errorf("invalid source URL: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to GET %s: %w", pathOrURL, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("failed to GET %s: status %s", pathOrURL, resp.Status)
		}
		return resp.Body, nil
	}

	file, err := os.Open(pathOrURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	return file, nil
}

func readCSV(ctx context.Context, name string, r io.Reader, tracker *Tracker) ([]GenericRecord, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true

	headers, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header of %s: %w", name, err)
	}
	for i, h := range headers {
		headers[i] = utils.NormalizeHeader(h)
	}

	var rows []GenericRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := csvReader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			if !isRowError(err) {
				return nil, fmt.Errorf("failed to read CSV %s: %w", name, err)
			}
			tracker.Reject(stageIngestion, fmt.Errorf("CSV read error in %s: %w", name, err))
			continue
		}

		row := make(GenericRecord, len(headers))
		for i, h := range headers {
			row[h] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}
}

// isRowError reports whether err is confined to one malformed row, after which
// the reader can move on. I/O errors are not.
func isRowError(err error) bool {
	var pe *csv.ParseError
	if !errors.As(err, &pe) {
		return false
	}
	return errors.Is(pe.Err, csv.ErrFieldCount) ||
		errors.Is(pe.Err, csv.ErrQuote) ||
		errors.Is(pe.Err, csv.ErrBareQuote)
}

func decodeProduct(row GenericRecord) (model.Product, error) {
	var p model.Product
	var err error
	if p.ProductID, err = utils.ParseInt(row["productid"]); err != nil {
		return p, fmt.Errorf("ProductID: %w", err)
	}
	p.Name = row["name"]
	p.ProductNumber = row["productnumber"]
	p.Color = row["color"]
	p.Size = row["size"]
	if p.StandardCost, err = utils.ParseDecimal(row["standardcost"]); err != nil {
		return p, fmt.Errorf("StandardCost: %w", err)
	}
	if p.ListPrice, err = utils.ParseDecimal(row["listprice"]); err != nil {
		return p, fmt.Errorf("ListPrice: %w", err)
	}
	return p, nil
}

func decodeSale(row GenericRecord) (model.SalesOrderDetail, error) {
	var s model.SalesOrderDetail
	var err error
	if s.SalesOrderID, err = utils.ParseInt(row["salesorderid"]); err != nil {
		return s, fmt.Errorf("SalesOrderID: %w", err)
	}
	if s.SalesOrderDetailID, err = utils.ParseInt(row["salesorderdetailid"]); err != nil {
		return s, fmt.Errorf("SalesOrderDetailID: %w", err)
	}
	if s.OrderQty, err = utils.ParseInt(row["orderqty"]); err != nil {
		return s, fmt.Errorf("OrderQty: %w", err)
	}
	if s.ProductID, err = utils.ParseInt(row["productid"]); err != nil {
		return s, fmt.Errorf("ProductID: %w", err)
	}
	if s.UnitPrice, err = utils.ParseDecimal(row["unitprice"]); err != nil {
		return s, fmt.Errorf("UnitPrice: %w", err)
	}
	if s.UnitPriceDiscount, err = utils.ParseDecimal(row["unitpricediscount"]); err != nil {
		return s, fmt.Errorf("UnitPriceDiscount: %w", err)
	}
	if s.LineTotal, err = utils.ParseDecimal(row["linetotal"]); err != nil {
		return s, fmt.Errorf("LineTotal: %w", err)
	}
	return s, nil
}
