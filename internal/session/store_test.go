package session

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMemoryStoreReturnsCopy(t *testing.T) {
	store := NewMemoryStore()

	sess := &Session{Flow: FlowDeposit, State: StateDepositAmount, CasinoID: "1xbet"}
	if err := store.Put(1, sess); err != nil {
		t.Fatal(err)
	}

	first, _ := store.Get(1)
	first.CasinoID = "melbet"

	second, _ := store.Get(1)
	if second.CasinoID != "1xbet" {
		t.Error("Get должен возвращать копию, а не ссылку на хранимое значение")
	}
}

func TestMemoryStoreUnknownChat(t *testing.T) {
	store := NewMemoryStore()
	sess, err := store.Get(42)
	if err != nil {
		t.Fatal(err)
	}
	if !sess.Idle() {
		t.Error("для незнакомого чата ожидается пустая сессия")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	store.Put(1, &Session{Flow: FlowWithdraw})
	store.Delete(1)

	sess, _ := store.Get(1)
	if !sess.Idle() {
		t.Error("после удаления сессия должна быть пустой")
	}
}

func TestSessionResetKeepsLanguage(t *testing.T) {
	sess := &Session{
		Flow:      FlowDeposit,
		State:     StateDepositReceipt,
		CasinoID:  "1xbet",
		AccountID: "12345",
		Amount:    decimal.RequireFromString("1000.37"),
		Language:  "ky",
	}
	sess.Reset()

	if !sess.Idle() {
		t.Error("после сброса сессия должна быть пустой")
	}
	if sess.CasinoID != "" || sess.AccountID != "" || !sess.Amount.IsZero() {
		t.Error("поля потока не очищены")
	}
	if sess.Language != "ky" {
		t.Error("язык должен переживать сброс")
	}
}
