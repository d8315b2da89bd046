package buddy

import "testing"

func TestOrderBankEmpty(t *testing.T) {
	bank := newOrderBank(10)
	for order := 0; order <= 10; order++ {
		if !bank.empty(order) {
			t.Errorf("freshly created bank: order %d reported non-empty", order)
		}
	}

	bank.heads[7] = 0x1000
	if bank.empty(7) {
		t.Error("order 7 reported empty after setting a non-zero head")
	}
	if !bank.empty(6) {
		t.Error("order 6 reported non-empty after only order 7 was touched")
	}
}
