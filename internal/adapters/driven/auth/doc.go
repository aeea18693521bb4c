// Package auth implements token acquisition against the Microsoft identity
// platform with golang.org/x/oauth2: silent refresh from the cached refresh
// token, and interactive sign-in with the device authorisation grant.
package auth
