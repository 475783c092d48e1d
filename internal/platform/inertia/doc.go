// Package inertia renders pages using the Inertia protocol.
//
// A page is a component name plus a props payload. Requests carrying the
// X-Inertia header receive the page object as JSON; every other request
// receives an HTML shell with the page object embedded in the root element's
// data-page attribute, from which the client-side app boots.
package inertia
