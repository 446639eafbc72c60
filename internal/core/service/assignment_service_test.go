package service

import (
	"context"
	"errors"
	"testing"

	"github.com/swiftroute/logistics-api/internal/core/domain"
	"github.com/swiftroute/logistics-api/internal/core/ports"
)

func newAssignmentFixture() (*AssignmentService, *stubShipmentRepo, *stubUserRepo) {
	repo := newStubShipmentRepo()
	users := newStubUserRepo()
	users.addDriver("driver_1", "Miguel Santos")
	users.addDriver("driver_2", "Laura Ortiz")
	return NewAssignmentService(repo, users, discardLogger), repo, users
}

func TestAssignmentService_Assign_Success(t *testing.T) {
	svc, repo, _ := newAssignmentFixture()
	seedShipment(repo, "shp_1", "SHP-1001", domain.StatusPending, "")

	shipment, err := svc.AssignDriver(context.Background(), managerActor, "shp_1", "driver_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shipment.DriverID != "driver_1" {
		t.Errorf("expected driver_1, got %q", shipment.DriverID)
	}
	if repo.byID["shp_1"].DriverID != "driver_1" {
		t.Error("assignment must be persisted")
	}
}

func TestAssignmentService_Reassign_HandsOverPrevDriver(t *testing.T) {
	svc, repo, _ := newAssignmentFixture()
	seedShipment(repo, "shp_1", "SHP-1001", domain.StatusInTransit, "driver_1")

	_, err := svc.AssignDriver(context.Background(), managerActor, "shp_1", "driver_2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastWrite == nil || repo.lastWrite.PrevDriverID != "driver_1" {
		t.Errorf("expected PrevDriverID driver_1 in the write, got %+v", repo.lastWrite)
	}
}

func TestAssignmentService_Unassign(t *testing.T) {
	svc, repo, _ := newAssignmentFixture()
	seedShipment(repo, "shp_1", "SHP-1001", domain.StatusPending, "driver_1")

	shipment, err := svc.AssignDriver(context.Background(), managerActor, "shp_1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shipment.DriverID != "" {
		t.Errorf("expected cleared assignment, got %q", shipment.DriverID)
	}
	if repo.lastWrite.PrevDriverID != "driver_1" {
		t.Errorf("the freed driver must be recomputed, got %q", repo.lastWrite.PrevDriverID)
	}
}

func TestAssignmentService_Assign_UnknownDriver(t *testing.T) {
	svc, repo, _ := newAssignmentFixture()
	seedShipment(repo, "shp_1", "SHP-1001", domain.StatusPending, "driver_1")

	_, err := svc.AssignDriver(context.Background(), managerActor, "shp_1", "driver_missing")
	if !errors.Is(err, domain.ErrDriverNotFound) {
		t.Fatalf("expected ErrDriverNotFound, got %v", err)
	}
	if repo.byID["shp_1"].DriverID != "driver_1" {
		t.Error("failed assignment must preserve the prior driver")
	}
}

func TestAssignmentService_Assign_RoleMismatch(t *testing.T) {
	svc, repo, users := newAssignmentFixture()
	seedShipment(repo, "shp_1", "SHP-1001", domain.StatusPending, "driver_1")
	users.byID["staff_9"] = &domain.User{ID: "staff_9", Name: "Rosa", Role: domain.RoleStaff}

	_, err := svc.AssignDriver(context.Background(), managerActor, "shp_1", "staff_9")
	if !errors.Is(err, domain.ErrDriverRoleMismatch) {
		t.Fatalf("expected ErrDriverRoleMismatch, got %v", err)
	}
	if repo.byID["shp_1"].DriverID != "driver_1" {
		t.Error("failed assignment must preserve the prior driver")
	}
}

func TestAssignmentService_Assign_Forbidden(t *testing.T) {
	svc, repo, _ := newAssignmentFixture()
	seedShipment(repo, "shp_1", "SHP-1001", domain.StatusPending, "")

	for _, actor := range []ports.Actor{driverActor, staffActor} {
		if _, err := svc.AssignDriver(context.Background(), actor, "shp_1", "driver_1"); !errors.Is(err, domain.ErrNotAuthorized) {
			t.Errorf("role %q: expected ErrNotAuthorized, got %v", actor.Role, err)
		}
	}
}

func TestAssignmentService_DriverLoad(t *testing.T) {
	svc, repo, _ := newAssignmentFixture()
	seedShipment(repo, "shp_1", "SHP-1001", domain.StatusInTransit, "driver_1")
	seedShipment(repo, "shp_2", "SHP-1002", domain.StatusOutForDelivery, "driver_1")
	seedShipment(repo, "shp_3", "SHP-1003", domain.StatusDelivered, "driver_1")
	seedShipment(repo, "shp_4", "SHP-1004", domain.StatusPending, "driver_1")

	load, err := svc.DriverLoad(context.Background(), "driver_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// pending, delivered and cancelled do not count toward active load.
	if load != 2 {
		t.Errorf("expected load 2, got %d", load)
	}
}
