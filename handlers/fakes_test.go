package handlers

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"givebridge/models"
	"givebridge/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	mu         sync.Mutex
	users      map[string]*models.User
	homeOwners map[string]*models.HomeOwner
	ngos       map[string]*models.NGOOwner // by NGO name
	volunteers map[string]*models.Volunteer
	accounts   []*models.Account

	getErr    error
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:      map[string]*models.User{},
		homeOwners: map[string]*models.HomeOwner{},
		ngos:       map[string]*models.NGOOwner{},
		volunteers: map[string]*models.Volunteer{},
	}
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.users[email], nil
}

func (f *fakeUserRepo) ListHomeOwners(_ context.Context) ([]*models.HomeOwner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	var out []*models.HomeOwner
	for _, h := range f.homeOwners {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (f *fakeUserRepo) GetHomeOwnerByEmail(_ context.Context, email string) (*models.HomeOwner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.homeOwners[email], nil
}

func (f *fakeUserRepo) GetNGOByName(_ context.Context, nameNGO string) (*models.NGOOwner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.ngos[nameNGO], nil
}

func (f *fakeUserRepo) GetNGOByEmail(_ context.Context, email string) (*models.NGOOwner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.ngos {
		if n.Email == email {
			return n, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetVolunteerByEmail(_ context.Context, email string) (*models.Volunteer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.volunteers[email], nil
}

func (f *fakeUserRepo) CreateAccount(_ context.Context, account *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[account.User.Email]; ok {
		return repository.ErrDuplicate
	}

	account.User.ID = primitive.NewObjectID()
	f.users[account.User.Email] = account.User
	switch {
	case account.HomeOwner != nil:
		account.HomeOwner.ID = primitive.NewObjectID()
		f.homeOwners[account.HomeOwner.Email] = account.HomeOwner
	case account.NGOOwner != nil:
		account.NGOOwner.ID = primitive.NewObjectID()
		f.ngos[account.NGOOwner.NameNGO] = account.NGOOwner
	case account.Volunteer != nil:
		account.Volunteer.ID = primitive.NewObjectID()
		f.volunteers[account.Volunteer.Email] = account.Volunteer
		account.NGO.Volunteers = append(account.NGO.Volunteers, account.Volunteer.ID)
	}
	f.accounts = append(f.accounts, account)
	return nil
}

type fakeItemRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*models.DonationItem

	listErr error
	saveErr error
}

func newFakeItemRepo(items ...*models.DonationItem) *fakeItemRepo {
	f := &fakeItemRepo{items: map[primitive.ObjectID]*models.DonationItem{}}
	for _, it := range items {
		if it.ID.IsZero() {
			it.ID = primitive.NewObjectID()
		}
		f.items[it.ID] = it
	}
	return f
}

func (f *fakeItemRepo) ListItemsByStatus(_ context.Context, status string) ([]*models.DonationItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.DonationItem
	for _, it := range f.items {
		if it.Status == status {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (f *fakeItemRepo) GetItemByID(_ context.Context, id primitive.ObjectID) (*models.DonationItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItemRepo) CreateItem(_ context.Context, item *models.DonationItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item.ID = primitive.NewObjectID()
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeItemRepo) SaveItem(_ context.Context, item *models.DonationItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.items[item.ID]; !ok {
		return errors.New("item not found")
	}
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

type fakeTokens struct {
	err error
}

func (f *fakeTokens) Issue(userID, email, userType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + userType + "-" + userID, nil
}

type fakeImages struct {
	mu      sync.Mutex
	saved   map[string][]byte
	deleted []string
}

func newFakeImages() *fakeImages {
	return &fakeImages{saved: map[string][]byte{}}
}

func (f *fakeImages) Save(_ context.Context, key, _ string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	url := "https://img.test/" + key
	f.saved[url] = data
	return url, nil
}

func (f *fakeImages) Delete(_ context.Context, fileURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.saved, fileURL)
	f.deleted = append(f.deleted, fileURL)
	return nil
}
