// File: internal/interfaces/bootcontrol.go
package interfaces

import "github.com/deploymenttheory/go-vold-bow/internal/types"

// BootControl abstracts the A/B-boot HAL query surface (spec §6, §9: "the
// HAL may be absent at runtime — all call sites must tolerate a null
// capability by treating it as 'no information'"). Implementations are an
// external collaborator; the core only consumes this interface.
type BootControl interface {
	// CurrentSlot returns the slot the system is currently running from.
	CurrentSlot() (types.Slot, error)

	// SlotSuffix returns the opaque suffix string (e.g. "_a") for slot.
	SlotSuffix(slot types.Slot) (string, error)

	// IsSlotMarkedSuccessful reports whether slot has been marked as having
	// booted successfully, or Invalid if that cannot be determined.
	IsSlotMarkedSuccessful(slot types.Slot) (types.Tristate, error)
}
