package ontology

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"log"

	"github.com/Carmen-Shannon/oxy-ontography/common"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed assets/ontography.yaml
var defaultDataset []byte

var validate = validator.New()

type categoryRecord struct {
	Key     string    `yaml:"key" validate:"required"`
	Color   string    `yaml:"color" validate:"required,hexcolor"`
	Meaning string    `yaml:"meaning"`
	Center  []float32 `yaml:"center" validate:"omitempty,len=3"`
}

type nodeRecord struct {
	Label    string `yaml:"label" validate:"required"`
	Category string `yaml:"category" validate:"required"`
}

type edgeRecord struct {
	From string `yaml:"from" validate:"required"`
	To   string `yaml:"to" validate:"required"`
}

type document struct {
	Categories []categoryRecord `yaml:"categories"`
	Nodes      []nodeRecord     `yaml:"nodes"`
	Edges      []edgeRecord     `yaml:"edges"`
}

// Default returns the dataset embedded in the binary.
// It panics if the embedded document does not parse, which can only happen on a broken build.
func Default() *Dataset {
	d, report, err := Decode(bytes.NewReader(defaultDataset))
	if err != nil {
		panic(fmt.Sprintf("ontology: embedded dataset: %v", err))
	}
	for _, issue := range report.Issues {
		log.Printf("[Ontology] embedded dataset: %s", issue)
	}
	return d
}

// Decode reads a YAML dataset document.
// Records that fail validation are skipped and listed in the report; they never abort decoding.
//
// Parameters:
//   - r: the YAML source
//
// Returns:
//   - *Dataset: the dataset built from the valid records
//   - Report: the skipped records
//   - error: error only if the document itself is not valid YAML
func Decode(r io.Reader) (*Dataset, Report, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, Report{}, fmt.Errorf("failed to decode dataset: %w", err)
	}

	var report Report
	skip := func(kind string, i int, err error) {
		report.add(IssueMalformed, fmt.Sprintf("%s #%d", kind, i), err.Error())
	}

	categories := make([]Category, 0, len(doc.Categories))
	for i, rec := range doc.Categories {
		if err := validate.Struct(rec); err != nil {
			skip("category", i, err)
			continue
		}
		col, err := common.ParseHexColor(rec.Color)
		if err != nil {
			skip("category", i, err)
			continue
		}
		c := Category{Key: CategoryKey(rec.Key), Style: CategoryStyle{Color: col, Meaning: rec.Meaning}}
		if len(rec.Center) == 3 {
			c.Center = common.Vec3{X: rec.Center[0], Y: rec.Center[1], Z: rec.Center[2]}
		}
		categories = append(categories, c)
	}

	nodes := make([]NodeDescriptor, 0, len(doc.Nodes))
	for i, rec := range doc.Nodes {
		if err := validate.Struct(rec); err != nil {
			skip("node", i, err)
			continue
		}
		nodes = append(nodes, NodeDescriptor{Label: rec.Label, Category: CategoryKey(rec.Category)})
	}

	edges := make([]EdgeDescriptor, 0, len(doc.Edges))
	for i, rec := range doc.Edges {
		if err := validate.Struct(rec); err != nil {
			skip("edge", i, err)
			continue
		}
		edges = append(edges, EdgeDescriptor{From: rec.From, To: rec.To})
	}

	for _, issue := range report.Issues {
		log.Printf("[Ontology] skipping %s: %s", issue.Subject, issue.Detail)
	}
	return NewDataset(categories, nodes, edges), report, nil
}
