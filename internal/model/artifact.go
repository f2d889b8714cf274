package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

const artifactSchema = `{
  "type": "object",
  "required": ["name", "feature_count", "trees"],
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "version": {"type": "integer", "minimum": 0},
    "feature_count": {"type": "integer", "minimum": 1},
    "classes": {"type": "array", "items": {"type": "integer", "minimum": 0}},
    "trees": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["nodes"],
        "additionalProperties": false,
        "properties": {
          "nodes": {"type": "array", "minItems": 1, "items": {"$ref": "#/$defs/node"}}
        }
      }
    }
  },
  "$defs": {
    "node": {
      "type": "object",
      "required": ["is_leaf"],
      "additionalProperties": false,
      "properties": {
        "feature_idx": {"type": "integer"},
        "threshold": {"type": "number"},
        "left_child": {"type": "integer"},
        "right_child": {"type": "integer"},
        "class_label": {"type": "integer", "minimum": 0},
        "is_leaf": {"type": "boolean"}
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("forest.json", strings.NewReader(artifactSchema)); err != nil {
			schemaErr = err
			return
		}
		schemaCompiled, schemaErr = compiler.Compile("forest.json")
	})
	return schemaCompiled, schemaErr
}

// LoadFile reads a forest artifact. Files ending in .yaml or .yml are decoded
// as YAML; anything else is treated as JSON.
func LoadFile(path string) (*Forest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact failed: %w", err)
	}
	var art Artifact
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		art, err = decodeYAML(raw)
	default:
		art, err = decodeJSON(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("parse model artifact %s failed: %w", filepath.Base(path), err)
	}
	forest, err := NewForest(art)
	if err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", filepath.Base(path), err)
	}
	return forest, nil
}

// decodeJSON validates raw against the artifact schema before decoding it.
func decodeJSON(raw []byte) (Artifact, error) {
	if !gjson.ValidBytes(raw) {
		return Artifact{}, fmt.Errorf("not valid json")
	}
	if err := validateSchema(raw); err != nil {
		return Artifact{}, err
	}
	var art Artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return Artifact{}, err
	}
	return art, nil
}

// decodeYAML decodes strictly, then re-encodes to JSON so both formats pass
// through the same schema.
func decodeYAML(raw []byte) (Artifact, error) {
	var art Artifact
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&art); err != nil {
		return Artifact{}, err
	}
	encoded, err := json.Marshal(art)
	if err != nil {
		return Artifact{}, err
	}
	if err := validateSchema(encoded); err != nil {
		return Artifact{}, err
	}
	return art, nil
}

func validateSchema(raw []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile artifact schema failed: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	return schema.Validate(doc)
}
