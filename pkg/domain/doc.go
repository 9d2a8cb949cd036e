/*
Package domain contains the core domain models of the Roster list feature.

It defines the entities the state machine operates on (Contacts), the overlay that may be
presented above the list (Destination), and the closed vocabulary of Actions the transition
function accepts. This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Contact: An identified record (ID + Name).
  - Contacts: An insertion-ordered collection keyed by ID.
  - Destination: A closed sum type (AddContact or ConfirmDeletion); nil means no overlay.
  - Alert: A declarative confirmation prompt with enumerated button outcomes.
  - Action: A closed sum type of everything the host may dispatch.
  - State: The snapshot of a screen (Contacts + Destination).
*/
package domain
