// Command moviesync resolves movie folder names against TMDB and maintains a
// local metadata cache.
package main
