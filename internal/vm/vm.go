// Package vm drives the lifecycle of the per-project development VM: it
// derives the VM name from the working directory, decides what `up` and
// `ssh` should do for the current state, and sequences the VBoxManage
// ops and guest steps that realise that decision.
package vm
