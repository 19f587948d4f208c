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

func TestEnforceUserWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("dispatch", "/admin/parcels/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetUserRoles(1, []string{"dispatch"}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}

	allow, err := svc.EnforceUser(1, "/api/v1/admin/parcels/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceUser(1, "/api/v1/admin/parcels/42", "POST")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestSetUserRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("dispatch", "/admin/parcels", "GET"); err != nil {
		t.Fatalf("grant dispatch policy failed: %v", err)
	}
	if err := svc.GrantRolePolicy("accounts", "/admin/users", "GET"); err != nil {
		t.Fatalf("grant accounts policy failed: %v", err)
	}

	if err := svc.SetUserRoles(2, []string{"dispatch"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	roles, err := svc.GetUserRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:dispatch" {
		t.Fatalf("roles want [role:dispatch], got=%v", roles)
	}

	if err := svc.SetUserRoles(2, []string{"accounts"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	roles, err = svc.GetUserRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:accounts" {
		t.Fatalf("roles want [role:accounts], got=%v", roles)
	}

	allow, err := svc.EnforceUser(2, "/admin/parcels", "GET")
	if err != nil {
		t.Fatalf("enforce old role failed: %v", err)
	}
	if allow {
		t.Fatalf("expected old role permission removed")
	}

	allow, err = svc.EnforceUser(2, "/admin/users", "GET")
	if err != nil {
		t.Fatalf("enforce new role failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected new role permission granted")
	}
}

func TestRolePolicyGrantRevokeAndInspect(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("dispatch", "/api/v1/admin/parcels", "get"); err != nil {
		t.Fatalf("grant policy failed: %v", err)
	}
	if err := svc.GrantRolePolicy("dispatch", "/admin/parcels/:id/deliver", "PATCH"); err != nil {
		t.Fatalf("grant second policy failed: %v", err)
	}

	policies, err := svc.GetRolePolicies("dispatch")
	if err != nil {
		t.Fatalf("get role policies failed: %v", err)
	}
	if len(policies) != 2 {
		t.Fatalf("policies want 2 got %d: %v", len(policies), policies)
	}
	// 对象与动作在写入时已归一化
	if policies[0].Object != "/admin/parcels" || policies[0].Action != "GET" {
		t.Fatalf("unexpected normalized policy: %+v", policies[0])
	}

	if err := svc.RevokeRolePolicy("dispatch", "/admin/parcels", "GET"); err != nil {
		t.Fatalf("revoke policy failed: %v", err)
	}
	allow, err := svc.EnforceRole("dispatch", "/admin/parcels", "GET")
	if err != nil {
		t.Fatalf("enforce after revoke failed: %v", err)
	}
	if allow {
		t.Fatalf("expected revoked policy to stop matching")
	}

	policies, err = svc.GetRolePolicies("dispatch")
	if err != nil {
		t.Fatalf("get role policies failed: %v", err)
	}
	if len(policies) != 1 || policies[0].Object != "/admin/parcels/:id/deliver" {
		t.Fatalf("remaining policies unexpected: %v", policies)
	}
}

func TestDeleteRoleRemovesPoliciesAndLinks(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("dispatch", "/admin/parcels", "GET"); err != nil {
		t.Fatalf("grant policy failed: %v", err)
	}
	if err := svc.SetUserRoles(9, []string{"dispatch"}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}

	if err := svc.DeleteRole("dispatch"); err != nil {
		t.Fatalf("delete role failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	for _, role := range roles {
		if role == "role:dispatch" {
			t.Fatalf("deleted role still listed: %v", roles)
		}
	}

	allow, err := svc.EnforceUser(9, "/admin/parcels", "GET")
	if err != nil {
		t.Fatalf("enforce after delete failed: %v", err)
	}
	if allow {
		t.Fatalf("expected permission gone with the role")
	}
}

func TestDeleteRoleRejectsBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	if err := svc.DeleteRole("vendor"); err == nil {
		t.Fatalf("expected builtin role delete to fail")
	}

	allow, err := svc.EnforceRole("VENDOR", "/parcels", "POST")
	if err != nil {
		t.Fatalf("enforce vendor failed: %v", err)
	}
	if !allow {
		t.Fatalf("builtin vendor policies should survive")
	}
}

func TestGetUserPoliciesMergesDirectAndRolePolicies(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("dispatch", "/admin/parcels", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetUserRoles(4, []string{"dispatch"}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}

	policies, err := svc.GetUserPolicies(4)
	if err != nil {
		t.Fatalf("get user policies failed: %v", err)
	}
	if len(policies) != 1 {
		t.Fatalf("policies want 1 got %d: %v", len(policies), policies)
	}
	if policies[0].Subject != "role:dispatch" || policies[0].Object != "/admin/parcels" {
		t.Fatalf("unexpected policy: %+v", policies[0])
	}
}

func TestReloadPolicyKeepsPersistedRules(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("dispatch", "/admin/parcels", "GET"); err != nil {
		t.Fatalf("grant policy failed: %v", err)
	}

	if err := svc.ReloadPolicy(); err != nil {
		t.Fatalf("reload policy failed: %v", err)
	}

	allow, err := svc.EnforceRole("dispatch", "/admin/parcels", "GET")
	if err != nil {
		t.Fatalf("enforce after reload failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected persisted policy to survive reload")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/parcels/:id", want: "/admin/parcels/:id"},
		{in: "/admin/parcels/:id", want: "/admin/parcels/:id"},
		{in: "admin/parcels", want: "/admin/parcels"},
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
		"role:customer":    true,
		"role:vendor":      true,
		"role:admin":       true,
		"role:super_admin": true,
	}
	for _, role := range roles {
		delete(wantRoles, role)
	}
	if len(wantRoles) != 0 {
		t.Fatalf("builtin roles missing: %v", wantRoles)
	}

	// 角色主体直接判定，与登录态中的账号角色对应
	allow, err := svc.EnforceRole("VENDOR", "/parcels", "POST")
	if err != nil {
		t.Fatalf("enforce vendor create failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected vendor create parcels allowed")
	}

	allow, err = svc.EnforceRole("CUSTOMER", "/parcels", "POST")
	if err != nil {
		t.Fatalf("enforce customer create failed: %v", err)
	}
	if allow {
		t.Fatalf("expected customer create parcels denied")
	}

	allow, err = svc.EnforceRole("CUSTOMER", "/parcels/7/received", "PATCH")
	if err != nil {
		t.Fatalf("enforce customer receive failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected customer receive allowed")
	}

	allow, err = svc.EnforceRole("SUPER_ADMIN", "/admin/users/3/block", "PATCH")
	if err != nil {
		t.Fatalf("enforce super admin inherited failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected super admin inherit admin permissions")
	}

	allow, err = svc.EnforceRole("VENDOR", "/admin/parcels", "GET")
	if err != nil {
		t.Fatalf("enforce vendor admin list failed: %v", err)
	}
	if allow {
		t.Fatalf("expected vendor denied on admin routes")
	}
}
