// Package tenantcore is a composable authorization core for multi-tenant
// SaaS backends.
//
// It answers four questions about every inbound request before any business
// logic runs: who is calling (session identity), which tenant they act
// within (membership), what role they hold there (ordinal role gating), and
// whether the tenant's subscription entitles them to the requested mutation
// (usage limits). A billing reconciler keeps the subscription record in
// sync with the payment provider's asynchronous webhook events.
//
// The building blocks live under pkg/ and are wired together per endpoint:
//
//	pipe := guard.Then(
//	    guard.Then(guard.Authenticate(sessions, users), guard.WithTenant(members)),
//	    guard.MinRole(membership.RoleMember),
//	)
//
// The modules/ directory contains thin HTTP surfaces (chi routers) showing
// the intended wiring, including limit enforcement at the point of write.
package tenantcore
