package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/fulldump/dataview/dataview"
	"github.com/fulldump/dataview/utils"
)

// loadItems reads a list of items from a JSON or YAML file. path selects the
// list inside the document using gjson syntax.
func loadItems(filename, path string) ([]dataview.Item, error) {

	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		var doc any
		err = yaml.Unmarshal(raw, &doc)
		if err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		raw, err = jsonv2.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("convert yaml: %w", err)
		}
	}

	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("parse json: %s is not valid JSON", filename)
	}

	result := gjson.ParseBytes(raw)
	if path != "" {
		result = result.Get(path)
		if !result.Exists() {
			return nil, fmt.Errorf("path '%s' not found in %s", path, filename)
		}
	}
	if !result.IsArray() {
		return nil, fmt.Errorf("expected a list of items, found %s", result.Type)
	}

	items := []dataview.Item{}
	err = utils.Remarshal(result.Value(), &items)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	return items, nil
}
