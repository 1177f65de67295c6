// Schema Generator
//
// Generates JSON Schema files from Go types for use in client-side schema
// validation. Go is the source of truth for the API types shared with the
// web client.
//
// Usage:
//
//	go run cmd/schema-gen/main.go
//
// Output:
//
//	./schemas/catalog.json
//	./schemas/stores.json
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/grabkey/deal-service/internal/catalog"
	"github.com/grabkey/deal-service/internal/handlers"
	"github.com/grabkey/deal-service/internal/search"
	"github.com/grabkey/deal-service/internal/stores"
)

// SchemaGroup represents a group of related schemas
type SchemaGroup struct {
	Name   string
	Types  []any
	Output string
}

func main() {
	outputDir := "./schemas"

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	groups := []SchemaGroup{
		{
			Name: "catalog",
			Types: []any{
				// Request types
				handlers.SearchGamesRequest{},
				// Response types
				catalog.Game{},
				catalog.Edition{},
				catalog.Price{},
				catalog.Store{},
				catalog.Deal{},
				catalog.DealScoreBreakdown{},
				catalog.PricePoint{},
				catalog.PriceHistory{},
				catalog.HorizonForecast{},
				catalog.PricePrediction{},
				search.Page{},
			},
			Output: "catalog.json",
		},
		{
			Name: "stores",
			Types: []any{
				// Request types
				handlers.AddWishlistItemRequest{},
				handlers.UpdateTargetPriceRequest{},
				handlers.CreateAlertRequest{},
				handlers.UpdateAlertRequest{},
				handlers.UpdatePreferencesRequest{},
				handlers.LoginRequest{},
				handlers.UpdateUserRequest{},
				// Response types
				stores.WishlistItem{},
				stores.PriceAlert{},
				stores.Notification{},
				stores.User{},
				stores.PreferencesState{},
			},
			Output: "stores.json",
		},
	}

	for _, group := range groups {
		schema := generateGroupSchema(group)
		outputPath := filepath.Join(outputDir, group.Output)

		if err := writeSchema(schema, outputPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", group.Output, err)
			os.Exit(1)
		}

		fmt.Printf("Generated %s\n", outputPath)
	}

	fmt.Println("Schema generation complete!")
}

// generateGroupSchema creates a combined schema with all types in a group
func generateGroupSchema(group SchemaGroup) map[string]any {
	reflector := &jsonschema.Reflector{
		DoNotReference: false,
		ExpandedStruct: false,
	}

	definitions := make(map[string]any)

	for _, t := range group.Types {
		schema := reflector.Reflect(t)

		typeName := ""
		if schema.Ref != "" {
			// Extract type name from $ref like "#/$defs/Game"
			typeName = filepath.Base(schema.Ref)
		}

		for name, def := range schema.Definitions {
			definitions[name] = def
		}

		if typeName != "" && schema.Definitions[typeName] != nil {
			definitions[typeName] = schema.Definitions[typeName]
		}
	}

	return map[string]any{
		"$schema":     "https://json-schema.org/draft/2020-12/schema",
		"$id":         fmt.Sprintf("https://grabkey.app/schemas/%s.json", group.Name),
		"title":       fmt.Sprintf("%s API Types", capitalize(group.Name)),
		"description": fmt.Sprintf("JSON Schema for %s API types generated from Go structs", group.Name),
		"$defs":       definitions,
	}
}

// writeSchema writes a schema to a JSON file
func writeSchema(schema map[string]any, path string) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
