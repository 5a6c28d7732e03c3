package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestMoneyFromIntRendersTwoDecimals(t *testing.T) {
	m := NewMoneyFromInt(4000)
	if m.String() != "4000.00" {
		t.Fatalf("unexpected money string: %s", m.String())
	}
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `"4000.00"` {
		t.Fatalf("unexpected money json: %s", raw)
	}
}

func TestMoneyUnmarshalAcceptsNumberAndString(t *testing.T) {
	var a, b Money
	if err := json.Unmarshal([]byte(`1500`), &a); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if err := json.Unmarshal([]byte(`"1500.5"`), &b); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if a.String() != "1500.00" || b.String() != "1500.50" {
		t.Fatalf("unexpected values: %s %s", a, b)
	}
}

func TestParseMoneyAcceptsStorefrontFormats(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{raw: "4000", want: "4000.00"},
		{raw: "4 000 fcfa", want: "4000.00"},
		{raw: "1500,5", want: "1500.50"},
		{raw: " 600.00 FCFA ", want: "600.00"},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.raw)
		if err != nil || got.String() != tc.want {
			t.Fatalf("ParseMoney(%q) = %s, %v; want %s", tc.raw, got, err, tc.want)
		}
	}
	if _, err := ParseMoney("fcfa"); err == nil {
		t.Fatalf("label only should fail")
	}
}

func TestMoneyArithmetic(t *testing.T) {
	line := NewMoneyFromInt(2000).Times(3)
	total := line.Plus(NewMoneyFromInt(500))
	if line.String() != "6000.00" || total.FCFA() != 6500 {
		t.Fatalf("unexpected arithmetic: %s %d", line, total.FCFA())
	}
}

func TestProductOptionsCloneIsDeep(t *testing.T) {
	opts := ProductOptions{
		"milk": {Type: "radio", Label: "Préférence", Choices: []Choice{{ID: "with_milk", Label: "Avec lait", Price: 500}}},
	}
	cloned := opts.Clone()
	cloned["milk"].Choices[0].Price = 0
	if opts["milk"].Choices[0].Price != 500 {
		t.Fatalf("clone shares choices with source")
	}
}

func TestProductJSONColumnsRoundTrip(t *testing.T) {
	dsn := fmt.Sprintf("file:models_product_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&Product{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	product := Product{
		ID:              101,
		Name:            "Choco Perle",
		Price:           1500,
		Category:        "bubble-tea",
		Ingredients:     StringArray{"Tapioca", "Milo", "Lait"},
		NutritionalInfo: NutritionalInfo{Calories: 320, Protein: "7", Carbs: "48", Fat: "5"},
		Options: ProductOptions{
			"milk": {Type: "radio", Label: "Préférence", Choices: []Choice{
				{ID: "with_milk", Label: "Avec lait", Price: 500},
				{ID: "without_milk", Label: "Sans lait", Price: 0},
			}},
		},
		IsActive: true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}
	var loaded Product
	if err := db.First(&loaded, 101).Error; err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.Ingredients) != 3 || loaded.NutritionalInfo.Calories != 320 {
		t.Fatalf("unexpected json columns: %+v", loaded)
	}
	if loaded.Options["milk"].Choices[0].Price != 500 {
		t.Fatalf("unexpected options: %+v", loaded.Options)
	}
}

func TestPrepareSQLiteDSN(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	dsn, err := prepareSQLiteDSN(filepath.Join(dir, "snaki.db"))
	if err != nil {
		t.Fatalf("prepare dsn failed: %v", err)
	}
	if !strings.HasSuffix(dsn, "?"+sqlitePragmas) {
		t.Fatalf("pragmas should be appended: %s", dsn)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("sqlite dir should be created: %v", err)
	}

	memory := "file:cart_test?mode=memory&cache=shared"
	if got, _ := prepareSQLiteDSN(memory); got != memory {
		t.Fatalf("memory dsn should be untouched: %s", got)
	}
	if _, err := prepareSQLiteDSN(" "); err == nil {
		t.Fatalf("empty dsn should fail")
	}
}

func TestInitDBRejectsUnknownDriver(t *testing.T) {
	if err := InitDB("mysql", "root@/snaki", DBPoolConfig{}); err == nil {
		t.Fatalf("unknown driver should fail")
	}
}
