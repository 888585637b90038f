// Package services provides domain services that work over more than one domain
// object and do not belong to a single aggregate.
//
// The package includes:
//   - ZoneResolver: classifies an address into one of a tenant's delivery zones and
//     validates order totals against the zone minimum
//
// Services here are pure: they receive everything they need as arguments and
// never touch storage or the network.
package services
