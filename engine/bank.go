package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nathoo/oreforge/engine/parser"
	"github.com/nathoo/oreforge/engine/state"
	"github.com/nathoo/oreforge/types"
)

// Stock places qty of a catalog item straight into the bank. Used for
// starting items.
func (e *Engine) Stock(name string, qty int) error {
	item, ok := state.LookupItem(e.Catalog, name)
	if !ok {
		return fmt.Errorf("%w: there is no item called %q", ErrUnknownItem, name)
	}
	if qty <= 0 {
		return nil
	}
	if overflow := e.Bank.Add(item, qty); overflow > 0 {
		return fmt.Errorf("%w: bank has no room for %d %s", ErrContainerFull, overflow, item.Name)
	}
	return nil
}

// Deposit moves qty of name from the inventory to the bank. A qty of
// parser.All deposits everything; zero means one.
func (e *Engine) Deposit(name string, qty int) (types.Result, error) {
	var res types.Result
	if name == "" {
		return res, fmt.Errorf("%w: deposit what?", ErrNotInInventory)
	}
	inv := e.Player.Inventory

	item := inv.Find(name)
	if item == nil {
		return res, fmt.Errorf("%w: you don't have any %s", ErrNotInInventory, name)
	}
	qty = wanted(qty, inv.Count(name))
	if !inv.Has(name, qty) {
		return res, fmt.Errorf("%w: you don't have %d %s", ErrNotInInventory, qty, item.Name)
	}

	removed := inv.Remove(name, qty)
	overflow := e.Bank.Add(item, removed)
	if overflow > 0 {
		inv.Add(item, overflow)
	}
	stored := removed - overflow
	if stored == 0 {
		return res, fmt.Errorf("%w: your bank is full", ErrContainerFull)
	}

	res.Output = append(res.Output, fmt.Sprintf("Deposited %d %s to your bank.", stored, item.Name))
	if overflow > 0 {
		res.Output = append(res.Output, fmt.Sprintf("Your bank is full! %d %s stayed in your inventory.", overflow, item.Name))
	}
	e.logger.Debug("deposit", zap.String("item", item.Name), zap.Int("stored", stored), zap.Int("returned", overflow))
	return res, nil
}

// Withdraw moves qty of name from the bank to the inventory. Bank names are
// matched exactly; a typed catalog name in any case resolves to the catalog
// spelling.
func (e *Engine) Withdraw(name string, qty int) (types.Result, error) {
	var res types.Result
	if name == "" {
		return res, fmt.Errorf("%w: withdraw what?", ErrNotInBank)
	}
	name = e.bankName(name)

	item := e.Bank.Find(name)
	if item == nil {
		return res, fmt.Errorf("%w: you don't have any %s in your bank", ErrNotInBank, name)
	}
	qty = wanted(qty, e.Bank.Count(name))
	if !e.Bank.Has(name, qty) {
		return res, fmt.Errorf("%w: you don't have %d %s in your bank", ErrNotInBank, qty, name)
	}
	inv := e.Player.Inventory
	if inv.IsFull() {
		return res, fmt.Errorf("%w: your inventory is full", ErrContainerFull)
	}

	taken := e.Bank.Remove(name, qty)
	overflow := inv.Add(item, taken)
	if overflow > 0 {
		e.Bank.Add(item, overflow)
	}
	got := taken - overflow
	if got == 0 {
		return res, fmt.Errorf("%w: your inventory is full", ErrContainerFull)
	}

	if overflow > 0 {
		res.Output = append(res.Output, fmt.Sprintf("Withdrew %d %s. Your inventory is now full.", got, item.Name))
	} else {
		res.Output = append(res.Output, fmt.Sprintf("Withdrew %d %s from your bank.", got, item.Name))
	}
	e.logger.Debug("withdraw", zap.String("item", item.Name), zap.Int("taken", got), zap.Int("returned", overflow))
	return res, nil
}

// bankName returns name when the bank holds it exactly, and otherwise the
// catalog spelling of name. Anything else keeps the bank's exact match.
func (e *Engine) bankName(name string) string {
	if e.Bank.Find(name) != nil {
		return name
	}
	if item, ok := state.LookupItem(e.Catalog, name); ok {
		return item.Name
	}
	return name
}

// wanted resolves a requested quantity against what is held.
func wanted(qty, held int) int {
	switch {
	case qty == parser.All:
		return max(1, held)
	case qty <= 0:
		return 1
	}
	return qty
}
