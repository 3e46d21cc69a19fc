// Package middleware provides rtrie handlers meant to be registered with
// Server.Use, Server.UseAt or Group.Use. Each one does its work and then
// continues the chain with ctx.Next(), or ends the response and stops it.
package middleware
