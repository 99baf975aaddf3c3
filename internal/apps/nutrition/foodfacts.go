package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrInvalidBarcode  = errors.New("barcode must be 8 to 14 digits")
	ErrProductNotFound = errors.New("product not found")
	ErrFoodService     = errors.New("food database unavailable")
)

// ValidBarcode reports whether s is an 8 to 14 digit numeric string, the
// range covering EAN-8 through GTIN-14.
func ValidBarcode(s string) bool {
	if len(s) < 8 || len(s) > 14 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FoodClient queries the Open Food Facts product endpoint.
type FoodClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewFoodClient(baseURL string, timeout time.Duration) *FoodClient {
	return &FoodClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type offResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string `json:"product_name"`
		Brands      string `json:"brands"`
		Nutriments  struct {
			EnergyKcal float64 `json:"energy-kcal_100g"`
			Proteins   float64 `json:"proteins_100g"`
			Carbs      float64 `json:"carbohydrates_100g"`
			Fat        float64 `json:"fat_100g"`
		} `json:"nutriments"`
	} `json:"product"`
}

// Lookup fetches nutrition facts for a validated barcode.
func (f *FoodClient) Lookup(ctx context.Context, barcode string) (*ProductInfo, error) {
	if !ValidBarcode(barcode) {
		return nil, ErrInvalidBarcode
	}

	url := fmt.Sprintf("%s/%s.json?fields=product_name,brands,nutriments", f.baseURL, barcode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFoodService, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFoodService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFoodService, resp.StatusCode)
	}

	var body offResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFoodService, err)
	}
	if body.Status != 1 || body.Product.ProductName == "" {
		return nil, ErrProductNotFound
	}

	return &ProductInfo{
		Barcode:         barcode,
		Name:            body.Product.ProductName,
		Brand:           body.Product.Brands,
		CaloriesPer100g: body.Product.Nutriments.EnergyKcal,
		ProteinPer100g:  body.Product.Nutriments.Proteins,
		CarbsPer100g:    body.Product.Nutriments.Carbs,
		FatPer100g:      body.Product.Nutriments.Fat,
	}, nil
}
