package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type Config struct {
	OrdersFile   string `split_words:"true" default:"data/CustomerOrders.json"`
	ProductsFile string `split_words:"true" default:"data/ProductCatalog.json"`
}

// Load reads both collections and fails on the first error.
func Load(ordersPath, productsPath string) (*Store, error) {
	var orders []Order
	if err := decodeFile(ordersPath, &orders); err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	var products []Product
	if err := decodeFile(productsPath, &products); err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	return New(orders, products), nil
}

// LoadOrEmpty loads what it can. A collection that cannot be read is logged
// and left empty so every lookup against it reports not found.
func LoadOrEmpty(cfg Config, logger zerolog.Logger) *Store {
	var orders []Order
	if err := decodeFile(cfg.OrdersFile, &orders); err != nil {
		logger.Warn().Err(err).Str("path", cfg.OrdersFile).Msg("customer orders unavailable, continuing with empty orders")
		orders = nil
	} else {
		logger.Info().Int("count", len(orders)).Msg("loaded customer orders")
	}

	var products []Product
	if err := decodeFile(cfg.ProductsFile, &products); err != nil {
		logger.Warn().Err(err).Str("path", cfg.ProductsFile).Msg("product catalog unavailable, continuing with empty catalog")
		products = nil
	} else {
		logger.Info().Int("count", len(products)).Msg("loaded products")
	}

	return New(orders, products)
}

func decodeFile(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode yaml %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode json %s: %w", path, err)
		}
	}
	return nil
}
