package mocks

import (
	"context"
	"strconv"
	"sync"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/store"
)

// --- AccountStore Mock ---

// AccountStore is a mock implementation of store.AccountStore.
type AccountStore struct {
	mu sync.RWMutex

	// Storage
	accounts map[string]map[string]string
	nextID   int

	// Call tracking
	Calls struct {
		Create      int
		GetFields   int
		SetField    int
		SetFields   int
		DeleteField int
	}

	// Error injection
	Errors struct {
		Create      error
		GetFields   error
		SetField    error
		SetFields   error
		DeleteField error
	}

	// SetFieldsHook, when set, is consulted before every SetFields call and
	// may fail selected writes.
	SetFieldsHook func(accountID types.ID, fields map[string]string) error
}

// NewAccountStore creates a new mock AccountStore. Ids are assigned
// sequentially starting at 1.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[string]map[string]string),
		nextID:   1,
	}
}

func (m *AccountStore) Create(ctx context.Context, account model.NewAccount) (types.ID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Create++

	if m.Errors.Create != nil {
		return "", m.Errors.Create
	}

	id := types.ID(strconv.Itoa(m.nextID))
	m.nextID++

	m.accounts[id.String()] = map[string]string{
		model.FieldUsername: account.Username,
		model.FieldEmail:    account.Email,
	}
	return id, nil
}

func (m *AccountStore) GetFields(ctx context.Context, accountID types.ID, fields ...string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.GetFields++

	if m.Errors.GetFields != nil {
		return nil, m.Errors.GetFields
	}

	result := make(map[string]string, len(fields))
	record := m.accounts[accountID.String()]
	for _, f := range fields {
		if v, ok := record[f]; ok {
			result[f] = v
		}
	}
	return result, nil
}

func (m *AccountStore) SetField(ctx context.Context, accountID types.ID, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.SetField++

	if m.Errors.SetField != nil {
		return m.Errors.SetField
	}

	m.record(accountID)[field] = value
	return nil
}

func (m *AccountStore) SetFields(ctx context.Context, accountID types.ID, fields map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.SetFields++

	if m.Errors.SetFields != nil {
		return m.Errors.SetFields
	}
	if m.SetFieldsHook != nil {
		if err := m.SetFieldsHook(accountID, fields); err != nil {
			return err
		}
	}

	record := m.record(accountID)
	for k, v := range fields {
		record[k] = v
	}
	return nil
}

func (m *AccountStore) DeleteField(ctx context.Context, accountID types.ID, field string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.DeleteField++

	if m.Errors.DeleteField != nil {
		return m.Errors.DeleteField
	}

	delete(m.accounts[accountID.String()], field)
	return nil
}

// record returns the field map of an account, creating it (must hold lock).
func (m *AccountStore) record(accountID types.ID) map[string]string {
	record, ok := m.accounts[accountID.String()]
	if !ok {
		record = make(map[string]string)
		m.accounts[accountID.String()] = record
	}
	return record
}

// --- AccountStore Helper Methods ---

// AddAccount seeds an account with fields.
func (m *AccountStore) AddAccount(accountID types.ID, fields map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record := m.record(accountID)
	for k, v := range fields {
		record[k] = v
	}
}

// Fields returns a copy of an account's fields.
func (m *AccountStore) Fields(accountID types.ID) map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record := m.accounts[accountID.String()]
	result := make(map[string]string, len(record))
	for k, v := range record {
		result[k] = v
	}
	return result
}

// Count returns the number of stored accounts.
func (m *AccountStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.accounts)
}

// --- ObjectStore Mock ---

// ObjectStore is a mock implementation of store.ObjectStore.
type ObjectStore struct {
	mu sync.RWMutex

	// Storage
	objects    map[string]map[string]string
	sortedSets map[string]map[string]struct{}

	// Call tracking
	Calls struct {
		GetObjectField    int
		SetObjectField    int
		DeleteObjectField int
		SortedSetRemove   int
	}

	// Error injection
	Errors struct {
		GetObjectField    error
		SetObjectField    error
		DeleteObjectField error
		SortedSetRemove   error
	}
}

// NewObjectStore creates a new mock ObjectStore.
func NewObjectStore() *ObjectStore {
	return &ObjectStore{
		objects:    make(map[string]map[string]string),
		sortedSets: make(map[string]map[string]struct{}),
	}
}

func (m *ObjectStore) GetObjectField(ctx context.Context, key, field string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.GetObjectField++

	if m.Errors.GetObjectField != nil {
		return "", m.Errors.GetObjectField
	}

	value, ok := m.objects[key][field]
	if !ok {
		return "", store.ErrNotFound
	}
	return value, nil
}

func (m *ObjectStore) SetObjectField(ctx context.Context, key, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.SetObjectField++

	if m.Errors.SetObjectField != nil {
		return m.Errors.SetObjectField
	}

	object, ok := m.objects[key]
	if !ok {
		object = make(map[string]string)
		m.objects[key] = object
	}
	object[field] = value
	return nil
}

func (m *ObjectStore) DeleteObjectField(ctx context.Context, key, field string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.DeleteObjectField++

	if m.Errors.DeleteObjectField != nil {
		return m.Errors.DeleteObjectField
	}

	delete(m.objects[key], field)
	return nil
}

func (m *ObjectStore) SortedSetRemove(ctx context.Context, key string, members ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.SortedSetRemove++

	if m.Errors.SortedSetRemove != nil {
		return m.Errors.SortedSetRemove
	}

	for _, member := range members {
		delete(m.sortedSets[key], member)
	}
	return nil
}

// --- ObjectStore Helper Methods ---

// Field returns a stored object field.
func (m *ObjectStore) Field(key, field string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.objects[key][field]
	return value, ok
}

// FieldCount returns the number of fields in an object.
func (m *ObjectStore) FieldCount(key string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects[key])
}

// AddToSortedSet seeds sorted set members.
func (m *ObjectStore) AddToSortedSet(key string, members ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.sortedSets[key]
	if !ok {
		set = make(map[string]struct{})
		m.sortedSets[key] = set
	}
	for _, member := range members {
		set[member] = struct{}{}
	}
}

// InSortedSet reports whether member is in the sorted set.
func (m *ObjectStore) InSortedSet(key, member string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.sortedSets[key][member]
	return ok
}

// --- SettingsStore Mock ---

// SettingsStore is a mock implementation of store.SettingsStore.
type SettingsStore struct {
	mu sync.RWMutex

	settings map[string]map[string]string

	// Call tracking
	Calls struct {
		Get int
		Set int
	}

	// Error injection
	Errors struct {
		Get error
		Set error
	}
}

// NewSettingsStore creates a new mock SettingsStore.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{
		settings: make(map[string]map[string]string),
	}
}

func (m *SettingsStore) Get(ctx context.Context, key string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Get++

	if m.Errors.Get != nil {
		return nil, m.Errors.Get
	}

	result := make(map[string]string, len(m.settings[key]))
	for k, v := range m.settings[key] {
		result[k] = v
	}
	return result, nil
}

func (m *SettingsStore) Set(ctx context.Context, key string, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Set++

	if m.Errors.Set != nil {
		return m.Errors.Set
	}

	m.put(key, values)
	return nil
}

// Seed stores settings without counting a call.
func (m *SettingsStore) Seed(key string, values map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(key, values)
}

func (m *SettingsStore) put(key string, values map[string]string) {
	current, ok := m.settings[key]
	if !ok {
		current = make(map[string]string)
		m.settings[key] = current
	}
	for k, v := range values {
		current[k] = v
	}
}

var (
	_ store.AccountStore  = (*AccountStore)(nil)
	_ store.ObjectStore   = (*ObjectStore)(nil)
	_ store.SettingsStore = (*SettingsStore)(nil)
)
