// Package surreal speaks the small slice of the SurrealDB HTTP API slurp
// needs: rendering a batch as a SurrealQL INSERT and POSTing it to /sql.
//
// Statements look like:
//
//	INSERT INTO person [{"age":31,"name":"ada"},{"age":42,"name":"bob"}] RETURN NONE;
//
// RETURN NONE keeps the server from echoing every inserted record back.
package surreal
