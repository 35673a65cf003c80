/*
Package domain contains the core domain models of FSMD.

It defines the declarative description of a finite-state machine as it is read from disk,
the transition triples that connect its states, and the typed errors every layer reports.
This package is kept pure and free of I/O, so the graph builder, the loader and the
adapters can all share it.

# Key Entities

  - FSMDescription: start state, states, accepting states and transitions of one machine.
  - TransitionSpec: a single "from;to;label" triple with its position in the source list.
  - Errors: MalformedInputError, MalformedTransitionError, RendererUnavailableError,
    RenderFailureError and UnknownStateError.
*/
package domain
