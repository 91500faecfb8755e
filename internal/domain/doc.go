// Package domain contains the core domain model for nstimes.
//
// The domain is transport- and persistence-agnostic: it does not depend on the NS API wire
// format, net/http, or the filesystem. Infra/adapters map into/from these types.
package domain
