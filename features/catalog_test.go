package features

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"storefront/cart"
	"storefront/models"
	"storefront/service"
)

type recordSource []models.RawProductRecord

func (s recordSource) FetchProducts(ctx context.Context) ([]models.RawProductRecord, error) {
	return s, nil
}

type catalogTestContext struct {
	records []models.RawProductRecord
	store   *cart.MemoryCart
	service *service.CatalogService
	err     error
}

func (c *catalogTestContext) reset() {
	c.records = nil
	c.store = cart.NewMemoryCart(nil)
	c.service = nil
	c.err = nil
}

func (c *catalogTestContext) aProductRecord(doc *godog.DocString) error {
	dec := json.NewDecoder(strings.NewReader(doc.Content))
	dec.UseNumber()
	var record models.RawProductRecord
	if err := dec.Decode(&record); err != nil {
		return fmt.Errorf("invalid product record: %w", err)
	}
	c.records = append(c.records, record)
	return nil
}

func (c *catalogTestContext) theCatalogIsLoaded() error {
	c.service = service.NewCatalogService(recordSource(c.records), c.store, 0, nil)
	return c.service.Refresh(context.Background())
}

func (c *catalogTestContext) theShopperSelectsVariantOfItem(variantID, itemID string) error {
	_, err := c.service.ChooseVariant(itemID, variantID)
	if err != nil && !errors.Is(err, service.ErrUnknownVariant) {
		return err
	}
	return nil
}

func (c *catalogTestContext) theShopperAddsItemToTheCart(itemID string) error {
	_, err := c.service.AddToCart(context.Background(), itemID)
	return err
}

func (c *catalogTestContext) card(itemID string) (models.CatalogCard, error) {
	return c.service.Card(itemID)
}

func (c *catalogTestContext) itemHasBasePrice(itemID string, price float64) error {
	card, err := c.card(itemID)
	if err != nil {
		return err
	}
	if card.Item.BasePrice != price {
		return fmt.Errorf("expected base price %v, got %v", price, card.Item.BasePrice)
	}
	return nil
}

func (c *catalogTestContext) itemHasVariants(itemID string, table *godog.Table) error {
	card, err := c.card(itemID)
	if err != nil {
		return err
	}

	rows := table.Rows[1:]
	if len(rows) != len(card.Item.Variants) {
		return fmt.Errorf("expected %d variants, got %d", len(rows), len(card.Item.Variants))
	}
	for i, row := range rows {
		diff, err := strconv.ParseFloat(row.Cells[2].Value, 64)
		if err != nil {
			return err
		}
		inStock, err := strconv.ParseBool(row.Cells[3].Value)
		if err != nil {
			return err
		}
		want := models.Variant{ID: row.Cells[0].Value, Name: row.Cells[1].Value, PriceDiff: diff, InStock: inStock}
		if card.Item.Variants[i] != want {
			return fmt.Errorf("variant %d: expected %+v, got %+v", i, want, card.Item.Variants[i])
		}
	}
	return nil
}

func (c *catalogTestContext) itemHasSelectedVariant(itemID, variantID string) error {
	card, err := c.card(itemID)
	if err != nil {
		return err
	}
	if card.SelectedVariantID == nil {
		return errors.New("expected a selected variant, got none")
	}
	if *card.SelectedVariantID != variantID {
		return fmt.Errorf("expected selected variant %q, got %q", variantID, *card.SelectedVariantID)
	}
	return nil
}

func (c *catalogTestContext) itemHasNoVariantSelection(itemID string) error {
	card, err := c.card(itemID)
	if err != nil {
		return err
	}
	if card.SelectedVariantID != nil {
		return fmt.Errorf("expected no selection, got %q", *card.SelectedVariantID)
	}
	return nil
}

func (c *catalogTestContext) itemIsAvailable(itemID string) error {
	card, err := c.card(itemID)
	if err != nil {
		return err
	}
	if !card.Available {
		return errors.New("expected item to be available")
	}
	return nil
}

func (c *catalogTestContext) itemIsNotAvailable(itemID string) error {
	card, err := c.card(itemID)
	if err != nil {
		return err
	}
	if card.Available {
		return errors.New("expected item to be unavailable")
	}
	return nil
}

func (c *catalogTestContext) itemIsOutOfStock(itemID string) error {
	card, err := c.card(itemID)
	if err != nil {
		return err
	}
	if card.Item.InStock {
		return errors.New("expected item inStock to be false")
	}
	return nil
}

func (c *catalogTestContext) itemHasPrice(itemID string, price float64) error {
	card, err := c.card(itemID)
	if err != nil {
		return err
	}
	if card.DisplayPrice != price {
		return fmt.Errorf("expected price %v, got %v", price, card.DisplayPrice)
	}
	return nil
}

func (c *catalogTestContext) addingItemToTheCartIsRejected(itemID string) error {
	_, err := c.service.AddToCart(context.Background(), itemID)
	if !errors.Is(err, service.ErrUnavailable) {
		return fmt.Errorf("expected ErrUnavailable, got %v", err)
	}
	return nil
}

func (c *catalogTestContext) lines() ([]models.CartLine, error) {
	return c.store.Lines(context.Background())
}

func (c *catalogTestContext) theCartIsEmpty() error {
	return c.theCartHoldsLines(0)
}

func (c *catalogTestContext) theCartHoldsLines(n int) error {
	lines, err := c.lines()
	if err != nil {
		return err
	}
	if len(lines) != n {
		return fmt.Errorf("expected %d cart lines, got %d", n, len(lines))
	}
	return nil
}

func (c *catalogTestContext) lastLine() (models.CartLine, error) {
	lines, err := c.lines()
	if err != nil {
		return models.CartLine{}, err
	}
	if len(lines) == 0 {
		return models.CartLine{}, errors.New("cart is empty")
	}
	return lines[len(lines)-1], nil
}

func (c *catalogTestContext) theLastCartLineHasPriceAndQuantity(price float64, qty int) error {
	line, err := c.lastLine()
	if err != nil {
		return err
	}
	if line.Payload.Price != price {
		return fmt.Errorf("expected price %v, got %v", price, line.Payload.Price)
	}
	if line.Payload.Qty != qty {
		return fmt.Errorf("expected qty %d, got %d", qty, line.Payload.Qty)
	}
	return nil
}

func (c *catalogTestContext) theLastCartLineHasVariant(variantID string) error {
	line, err := c.lastLine()
	if err != nil {
		return err
	}
	if line.Payload.SelectedVariant == nil {
		return errors.New("expected a selected variant in the payload")
	}
	if line.Payload.SelectedVariant.ID != variantID {
		return fmt.Errorf("expected variant %q, got %q", variantID, line.Payload.SelectedVariant.ID)
	}
	return nil
}

func (c *catalogTestContext) filteringByShowsItems(category, ids string) error {
	items := c.service.Items(category)
	got := make([]string, 0, len(items))
	for _, item := range items {
		got = append(got, item.ID)
	}
	if strings.Join(got, ",") != ids {
		return fmt.Errorf("expected items %s, got %s", ids, strings.Join(got, ","))
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &catalogTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a product record:$`, tc.aProductRecord)

	// When steps
	ctx.Step(`^the catalog is loaded$`, tc.theCatalogIsLoaded)
	ctx.Step(`^the shopper selects variant "([^"]*)" of item "([^"]*)"$`, tc.theShopperSelectsVariantOfItem)
	ctx.Step(`^the shopper adds item "([^"]*)" to the cart$`, tc.theShopperAddsItemToTheCart)

	// Then steps
	ctx.Step(`^item "([^"]*)" has base price (-?\d+(?:\.\d+)?)$`, tc.itemHasBasePrice)
	ctx.Step(`^item "([^"]*)" has variants:$`, tc.itemHasVariants)
	ctx.Step(`^item "([^"]*)" has selected variant "([^"]*)"$`, tc.itemHasSelectedVariant)
	ctx.Step(`^item "([^"]*)" has no variant selection$`, tc.itemHasNoVariantSelection)
	ctx.Step(`^item "([^"]*)" is available$`, tc.itemIsAvailable)
	ctx.Step(`^item "([^"]*)" is not available$`, tc.itemIsNotAvailable)
	ctx.Step(`^item "([^"]*)" is out of stock$`, tc.itemIsOutOfStock)
	ctx.Step(`^item "([^"]*)" has price (-?\d+(?:\.\d+)?)$`, tc.itemHasPrice)
	ctx.Step(`^adding item "([^"]*)" to the cart is rejected$`, tc.addingItemToTheCartIsRejected)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^the cart holds (\d+) lines?$`, tc.theCartHoldsLines)
	ctx.Step(`^the last cart line has price (-?\d+(?:\.\d+)?) and quantity (\d+)$`, tc.theLastCartLineHasPriceAndQuantity)
	ctx.Step(`^the last cart line has variant "([^"]*)"$`, tc.theLastCartLineHasVariant)
	ctx.Step(`^filtering by "([^"]*)" shows items "([^"]*)"$`, tc.filteringByShowsItems)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"catalog.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

