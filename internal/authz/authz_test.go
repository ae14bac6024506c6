package authz

import (
	"testing"

	"github.com/google/uuid"

	"github.com/kevgathuku/docue-stack-sub000/internal/models"
)

func callerWithLevel(level int) Caller {
	title := models.RoleViewer
	switch level {
	case 1:
		title = models.RoleStaff
	case 2:
		title = models.RoleAdmin
	}
	return Caller{
		ID:       uuid.NewString(),
		Role:     Role{ID: uuid.NewString(), Title: title, AccessLevel: level},
		LoggedIn: true,
	}
}

func docWithLevel(level int, owner uuid.UUID) *models.Document {
	title := models.RoleViewer
	switch level {
	case 1:
		title = models.RoleStaff
	case 2:
		title = models.RoleAdmin
	}
	return &models.Document{
		ID:      uuid.New(),
		Title:   "doc",
		OwnerID: owner,
		Role:    models.Role{ID: uuid.New(), Title: title, AccessLevel: level},
	}
}

func TestOwnershipDominatesRoleChecks(t *testing.T) {
	// An owner may read, modify and delete regardless of access levels.
	for callerLevel := 0; callerLevel <= 2; callerLevel++ {
		for docLevel := 0; docLevel <= 2; docLevel++ {
			caller := callerWithLevel(callerLevel)
			ownerID := uuid.MustParse(caller.ID)
			doc := docWithLevel(docLevel, ownerID)

			if !IsOwner(caller, doc) {
				t.Fatalf("caller level %d should own doc level %d", callerLevel, docLevel)
			}
			if !CanRead(caller, doc) {
				t.Errorf("owner denied read (caller %d, doc %d)", callerLevel, docLevel)
			}
			if !CanModify(caller, doc) {
				t.Errorf("owner denied modify (caller %d, doc %d)", callerLevel, docLevel)
			}
			if !CanDelete(caller, doc) {
				t.Errorf("owner denied delete (caller %d, doc %d)", callerLevel, docLevel)
			}
		}
	}
}

func TestAccessLevelComparison(t *testing.T) {
	for callerLevel := 0; callerLevel <= 2; callerLevel++ {
		for docLevel := 0; docLevel <= 2; docLevel++ {
			caller := callerWithLevel(callerLevel)
			doc := docWithLevel(docLevel, uuid.New())

			want := callerLevel >= docLevel
			if got := CanRead(caller, doc); got != want {
				t.Errorf("CanRead(caller %d, doc %d) = %v, want %v", callerLevel, docLevel, got, want)
			}
			if got := CanModify(caller, doc); got != want {
				t.Errorf("CanModify(caller %d, doc %d) = %v, want %v", callerLevel, docLevel, got, want)
			}
		}
	}
}

func TestMissingDocumentRoleFailsClosed(t *testing.T) {
	caller := callerWithLevel(2)
	doc := &models.Document{ID: uuid.New(), Title: "orphan", OwnerID: uuid.New()}

	if CanRead(caller, doc) {
		t.Error("document without a role must not be readable by non-owners")
	}

	// The owner still gets through.
	ownerCaller := Caller{ID: doc.OwnerID.String(), Role: Role{Title: models.RoleViewer}}
	if !CanRead(ownerCaller, doc) {
		t.Error("owner must read a document even without a role")
	}
}

func TestNilDocumentFailsClosed(t *testing.T) {
	caller := callerWithLevel(2)
	if CanRead(caller, nil) || CanModify(caller, nil) || IsOwner(caller, nil) {
		t.Error("nil document must deny everything except admin delete")
	}
}

func TestAdminCanDeleteAnyDocument(t *testing.T) {
	admin := callerWithLevel(2)
	for docLevel := 0; docLevel <= 2; docLevel++ {
		doc := docWithLevel(docLevel, uuid.New())
		if !CanDelete(admin, doc) {
			t.Errorf("admin denied delete on doc level %d", docLevel)
		}
	}

	viewer := callerWithLevel(0)
	if CanDelete(viewer, docWithLevel(0, uuid.New())) {
		t.Error("non-owner viewer must not delete")
	}
}

func TestDecisionsAreStable(t *testing.T) {
	caller := callerWithLevel(1)
	doc := docWithLevel(1, uuid.New())

	first := CanRead(caller, doc)
	for i := 0; i < 10; i++ {
		if CanRead(caller, doc) != first {
			t.Fatal("CanRead is not stable under repeated evaluation")
		}
	}
}

func TestIDEqCanonicalization(t *testing.T) {
	id := uuid.New()
	user := models.User{ID: id}

	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"string vs string", id.String(), id.String(), true},
		{"string vs uuid", id.String(), id, true},
		{"string vs user record", id.String(), user, true},
		{"string vs user pointer", id.String(), &user, true},
		{"different ids", id.String(), uuid.NewString(), false},
		{"empty never matches", "", "", false},
		{"nil never matches", nil, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IDEq(tc.a, tc.b); got != tc.want {
				t.Errorf("IDEq(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestUserProfilePredicates(t *testing.T) {
	self := callerWithLevel(0)
	admin := callerWithLevel(2)
	otherID := uuid.NewString()

	if !CanViewUserProfile(self, self.ID) {
		t.Error("user must view own profile")
	}
	if CanViewUserProfile(self, otherID) {
		t.Error("viewer must not view another profile")
	}
	if !CanViewUserProfile(admin, otherID) {
		t.Error("admin must view any profile")
	}

	if !CanModifyUserProfile(self, self.ID) || !CanDeleteUser(self, self.ID) {
		t.Error("user must modify and delete own profile")
	}
	if CanModifyUserProfile(self, otherID) || CanDeleteUser(self, otherID) {
		t.Error("viewer must not modify or delete other profiles")
	}

	if !CanListUsers(admin) || !CanGetStats(admin) {
		t.Error("admin must list users and get stats")
	}
	if CanListUsers(self) || CanGetStats(self) {
		t.Error("non-admin must not list users or get stats")
	}
}
