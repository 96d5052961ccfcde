package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/asaidimu/go-ramani/core/analysis"
	"github.com/asaidimu/go-ramani/core/mapping"
	"github.com/asaidimu/go-ramani/sqlite"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	dbFileName         = "mappings.db"
	articleMappingJSON = `{
		"_meta": {"owner": "content-team"},
		"properties": {
			"title": {
				"type": "text",
				"analyzer": "english",
				"fields": {
					"raw": {"type": "keyword", "ignore_above": 256}
				}
			},
			"published": {"type": "boolean"},
			"tags": {
				"type": "keyword",
				"meta": {"unit": "tag"}
			}
		}
	}`
	legacyMappingJSON = `{
		"properties": {
			"title": {
				"type": "text",
				"fields": {
					"raw": {
						"type": "keyword",
						"fields": {"lowercase": {"type": "keyword"}}
					}
				}
			}
		}
	}`
)

func main() {
	os.Remove(dbFileName)
	defer os.Remove(dbFileName)

	db, err := sql.Open("sqlite3", dbFileName)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	store, err := sqlite.NewStore(db, nil)
	if err != nil {
		log.Fatalf("Failed to initialize mapping store: %v", err)
	}

	analyzers := analysis.NewIndexAnalyzers(map[string]*analysis.NamedAnalyzer{
		analysis.DefaultAnalyzerName: analysis.NewNamedAnalyzer("standard", analysis.ScopeIndex),
		"english":                    analysis.NewNamedAnalyzer("english", analysis.ScopeIndex),
	})

	service, err := mapping.NewService(store, &mapping.ServiceOptions{Analyzers: analyzers})
	if err != nil {
		log.Fatalf("Failed to initialize mapping service: %v", err)
	}

	subscriptionID := service.Subscribe(mapping.SubscribeOptions{
		Event: mapping.MappingCompileSuccess,
		Callback: func(ctx context.Context, event mapping.Event) error {
			fmt.Printf("event: %s index=%s version=%s\n", event.Type, event.Index, event.Version)
			return nil
		},
	})
	defer service.Unsubscribe(subscriptionID)

	ctx := context.Background()

	// Compile and persist a current-format mapping.
	compiled, _, err := service.Compile(ctx, "articles", []byte(articleMappingJSON),
		mapping.FormatJSON, mapping.MustParseVersion("8.11.0"))
	if err != nil {
		log.Fatalf("Failed to compile mapping: %v", err)
	}
	fmt.Printf("compiled fields for [articles]: %v\n", compiled.FieldNames())
	for _, name := range compiled.FieldNames() {
		mapper := compiled.Field(name)
		fmt.Printf("  %s -> %s (multi-fields: %d)\n", mapper.Name(), mapper.TypeName(), len(mapper.Multifields()))
	}

	// A legacy index may still chain multi-fields; before 8.0 that is only
	// a deprecation.
	_, deprecations, err := service.Compile(ctx, "articles-legacy", []byte(legacyMappingJSON),
		mapping.FormatJSON, mapping.MustParseVersion("7.17.0"))
	if err != nil {
		log.Fatalf("Failed to compile legacy mapping: %v", err)
	}
	for _, deprecation := range deprecations {
		fmt.Printf("deprecation on [%s]: %s\n", deprecation.Field, deprecation.Message)
	}

	// The same definition is rejected at the enforcement threshold.
	_, _, err = service.Compile(ctx, "articles-new", []byte(legacyMappingJSON),
		mapping.FormatJSON, mapping.MustParseVersion("8.0.0"))
	if err != nil {
		fmt.Printf("rejected for 8.0.0: %v\n", err)
	}

	indices, err := service.Indices(ctx)
	if err != nil {
		log.Fatalf("Failed to list indices: %v", err)
	}
	fmt.Printf("stored mappings: %v\n", indices)
}
