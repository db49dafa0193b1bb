package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceRoleWithPolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("ops", "/admin/products/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}

	allow, err := svc.EnforceRole("ops", "/api/v1/admin/products/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceRole("ops", "/api/v1/admin/products/42", "POST")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestRevokeRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("ops", "/admin/orders", "GET"); err != nil {
		t.Fatalf("grant ops policy failed: %v", err)
	}

	allow, err := svc.EnforceRole("ops", "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow before revoke")
	}

	if err := svc.RevokeRolePolicy("ops", "/admin/orders", "GET"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	allow, err = svc.EnforceRole("ops", "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce after revoke failed: %v", err)
	}
	if allow {
		t.Fatalf("expected deny after revoke")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "admin/orders", want: "/admin/orders"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	wantRoles := map[string]bool{
		"role:admin":            true,
		"role:readonly_auditor": true,
		"role:support":          true,
	}
	for _, role := range roles {
		delete(wantRoles, role)
	}
	if len(wantRoles) != 0 {
		t.Fatalf("builtin roles missing: %v", wantRoles)
	}

	// admin 通配所有管理接口
	allow, err := svc.EnforceRole("admin", "/admin/coupons/7", "DELETE")
	if err != nil {
		t.Fatalf("enforce admin failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected admin wildcard allow")
	}

	// 审计角色只读
	allow, err = svc.EnforceRole("readonly_auditor", "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce auditor read failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected auditor read allow")
	}
	allow, err = svc.EnforceRole("readonly_auditor", "/admin/orders/3", "PATCH")
	if err != nil {
		t.Fatalf("enforce auditor write failed: %v", err)
	}
	if allow {
		t.Fatalf("expected auditor write deny")
	}

	// 客服继承只读并可改订单
	allow, err = svc.EnforceRole("support", "/admin/products", "GET")
	if err != nil {
		t.Fatalf("enforce support inherited read failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected support inherited read allow")
	}
	allow, err = svc.EnforceRole("support", "/admin/orders/3", "PATCH")
	if err != nil {
		t.Fatalf("enforce support order patch failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected support order patch allow")
	}
	allow, err = svc.EnforceRole("support", "/admin/products/3", "PUT")
	if err != nil {
		t.Fatalf("enforce support product write failed: %v", err)
	}
	if allow {
		t.Fatalf("expected support product write deny")
	}
}
