package places

import "testing"

func TestNormalizeWorkspaceClamp(t *testing.T) {
	in := workspaceInput{
		OrganizationID: "o1",
		Title:          "Desk",
		Capacity:       0,
		Floor:          -3,
	}
	out, err := normalizeWorkspace(in)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if out.Capacity != 1 {
		t.Errorf("Capacity = %d, want clamped to 1", out.Capacity)
	}
	if out.Floor != 1 {
		t.Errorf("Floor = %d, want clamped to 1", out.Floor)
	}

	in.Capacity = 12
	in.Floor = 4
	out, err = normalizeWorkspace(in)
	if err != nil {
		t.Fatal(err)
	}
	if out.Capacity != 12 || out.Floor != 4 {
		t.Errorf("valid values were altered: %d %d", out.Capacity, out.Floor)
	}
}

func TestNormalizeWorkspaceNameAlias(t *testing.T) {
	out, err := normalizeWorkspace(workspaceInput{
		OrganizationID: "o1",
		Name:           "Legacy Desk",
	})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if out.Title != "Legacy Desk" {
		t.Errorf("Title = %q, alias not applied", out.Title)
	}

	// title wins when both are present
	out, err = normalizeWorkspace(workspaceInput{
		OrganizationID: "o1",
		Title:          "Canonical",
		Name:           "Legacy",
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Title != "Canonical" {
		t.Errorf("Title = %q, want canonical field to win", out.Title)
	}
}

func TestNormalizeWorkspaceRequiredFields(t *testing.T) {
	if _, err := normalizeWorkspace(workspaceInput{OrganizationID: "o1"}); err == nil {
		t.Error("missing title accepted")
	}
	if _, err := normalizeWorkspace(workspaceInput{OrganizationID: "o1", Title: "   "}); err == nil {
		t.Error("blank title accepted")
	}
	if _, err := normalizeWorkspace(workspaceInput{Title: "Desk"}); err == nil {
		t.Error("missing organizationId accepted")
	}
}
