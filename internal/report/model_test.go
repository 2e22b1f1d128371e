package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"arcucheck/internal/parser"
)

const modelText = `@startuml Shop
abstract class shop.Order {
  - String id
  + <<Create>> Order(String id)
  + {abstract} double total()
}
interface shop.Priced {
  + double price()
}
shop.Order <|.. shop.Priced
@enduml
`

func TestDiagramAsTree(t *testing.T) {
	d, err := parser.ParseDiagram("shop.puml", modelText)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := DiagramAsTree(&buf, d); err != nil {
		t.Fatal(err)
	}
	want := `shop.puml (Shop)
├── abstract class shop.Order (line 2)
│   ├── + <<Create>> Order(String id)
│   ├── - String id
│   └── + {abstract} double total()
├── interface shop.Priced (line 7)
│   └── + double price()
└── relations
    └── shop.Order <|.. shop.Priced (REALISATION)
`
	if buf.String() != want {
		t.Errorf("tree:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestDiagramAsJSON(t *testing.T) {
	d, err := parser.ParseDiagram("shop.puml", modelText)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := DiagramAsJSON(&buf, d); err != nil {
		t.Fatal(err)
	}
	var got DiagramJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "Shop" || len(got.Types) != 2 || len(got.Relations) != 1 {
		t.Fatalf("got %+v", got)
	}
	order := got.Types[0]
	if order.Kind != "class" || !order.Abstract || len(order.Fields) != 1 || order.Fields[0].Visibility != "PRIVATE" {
		t.Errorf("order = %+v", order)
	}
	if strings.Join(got.Packages, ",") != "shop" {
		t.Errorf("packages = %v", got.Packages)
	}
}
