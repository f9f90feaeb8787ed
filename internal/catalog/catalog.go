// Package catalog loads the storefront's seed catalogue (products and initial
// accounts) from gzipped JSON-lines files on disk or in S3.
package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"floralshop/internal/model"
)

// Record kinds accepted in a seed file.
const (
	KindProduct = "product"
	KindUser    = "user"
)

// SeedUser is an account to create at seed time. Password is plaintext and is
// hashed before storage.
type SeedUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Seed is the decoded content of a seed file.
type Seed struct {
	Products []model.Product
	Users    []SeedUser
}

// Loader defines the interface for loading seed files.
type Loader interface {
	// Load reads a gzipped JSON-lines seed file.
	Load(ctx context.Context, path string) (*Seed, error)
}

// Decode reads gzipped JSON lines from r. Each non-blank line is an object with a
// "kind" field of "product" or "user". A later product with the same ID replaces
// an earlier one.
func Decode(ctx context.Context, r io.Reader) (*Seed, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	seed := &Seed{Products: []model.Product{}, Users: []SeedUser{}}
	productIndex := make(map[string]int)

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var head struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal([]byte(line), &head); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", lineNo, err)
		}

		switch head.Kind {
		case KindProduct:
			var p model.Product
			if err := json.Unmarshal([]byte(line), &p); err != nil {
				return nil, fmt.Errorf("line %d: invalid product: %w", lineNo, err)
			}
			if err := validateProduct(&p); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if i, ok := productIndex[p.ID]; ok {
				seed.Products[i] = p
				continue
			}
			productIndex[p.ID] = len(seed.Products)
			seed.Products = append(seed.Products, p)
		case KindUser:
			var u SeedUser
			if err := json.Unmarshal([]byte(line), &u); err != nil {
				return nil, fmt.Errorf("line %d: invalid user: %w", lineNo, err)
			}
			if u.Email == "" || u.Password == "" {
				return nil, fmt.Errorf("line %d: user email and password are required", lineNo)
			}
			seed.Users = append(seed.Users, u)
		default:
			return nil, fmt.Errorf("line %d: unknown record kind %q", lineNo, head.Kind)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed data: %w", err)
	}

	return seed, nil
}

func validateProduct(p *model.Product) error {
	switch {
	case p.ID == "":
		return fmt.Errorf("product id is required")
	case p.Slug == "":
		return fmt.Errorf("product %s: slug is required", p.ID)
	case p.Name == "":
		return fmt.Errorf("product %s: name is required", p.ID)
	case p.Price.IsNegative():
		return fmt.Errorf("product %s: price must not be negative", p.ID)
	case p.CountInStock < 0:
		return fmt.Errorf("product %s: countInStock must not be negative", p.ID)
	}
	return nil
}
