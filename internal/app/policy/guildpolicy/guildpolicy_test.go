package guildpolicy_test

import (
	"testing"

	"github.com/questboard/questboard/internal/app/policy/guildpolicy"
	"github.com/questboard/questboard/internal/app/system/snapshot"
	"github.com/questboard/questboard/internal/domain/models"
)

func member(canManage bool, roles ...string) snapshot.Member {
	return snapshot.Member{
		ID:             "1",
		Tag:            "user#0001",
		RoleNames:      roles,
		CanManageGuild: canManage,
	}
}

func TestResolve_NoManagerRole_AdminRequiresManageGuild(t *testing.T) {
	cfg := models.GuildConfig{Guild: "g1"}

	if got := guildpolicy.Resolve(member(false, "Editor", "Player"), cfg); got.IsAdmin {
		t.Error("expected IsAdmin=false without Manage Server and no manager role")
	}
	if got := guildpolicy.Resolve(member(true), cfg); !got.IsAdmin {
		t.Error("expected IsAdmin=true for Manage Server permission")
	}
}

func TestResolve_ManagerRole_CaseInsensitive(t *testing.T) {
	cfg := models.GuildConfig{Guild: "g1", ManagerRole: "Game Masters"}

	if got := guildpolicy.Resolve(member(false, " game masters "), cfg); !got.IsAdmin {
		t.Error("expected manager role match to be case-insensitive and trimmed")
	}
	if got := guildpolicy.Resolve(member(false, "Players"), cfg); got.IsAdmin {
		t.Error("expected IsAdmin=false when manager role not held")
	}
}

func TestResolve_RequiredRole(t *testing.T) {
	// Member has roles ["Editor"], no bypass, config requires "editor":
	// permission granted, admin not.
	cfg := models.GuildConfig{Guild: "g1", Role: "editor"}
	got := guildpolicy.Resolve(member(false, "Editor"), cfg)
	if !got.Permission {
		t.Error("expected Permission=true for case-insensitive required-role match")
	}
	if got.IsAdmin {
		t.Error("expected IsAdmin=false")
	}

	if got := guildpolicy.Resolve(member(false, "Lurker"), cfg); got.Permission {
		t.Error("expected Permission=false when required role not held")
	}
}

func TestResolve_NoRequiredRole_EveryoneMayPost(t *testing.T) {
	got := guildpolicy.Resolve(member(false), models.GuildConfig{Guild: "g1"})
	if !got.Permission {
		t.Error("expected Permission=true when config sets no required role")
	}
}

func TestResolve_AdminDoesNotImplyPermission(t *testing.T) {
	// Admin via Manage Server still lacks the required role.
	cfg := models.GuildConfig{Guild: "g1", Role: "players"}
	got := guildpolicy.Resolve(member(true, "Mods"), cfg)
	if !got.IsAdmin {
		t.Error("expected IsAdmin=true")
	}
	if got.Permission {
		t.Error("expected Permission=false without the required role")
	}
}
