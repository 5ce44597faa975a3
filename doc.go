// Package loam is a relational mapping toolkit for MySQL, PostgreSQL and
// SQLite: a dialect-correct query builder, a logical column type resolver
// and a record layer with eager-loaded relations.
//
// Schemas declare entities once, dialect-neutrally:
//
//	var Users = loam.NewSchema("user",
//		field.BigInt("id").PrimaryKey().AutoIncrement(),
//		field.Varchar("name"),
//		field.Varchar("email").Size(120).Unique(),
//	)
//
//	var Posts = loam.NewSchema("post",
//		field.BigInt("id").PrimaryKey().AutoIncrement(),
//		field.BigInt("user_id").References("users", "id").OnDelete("cascade"),
//		field.Text("body"),
//	)
//
//	func init() { Users.HasMany("posts", Posts, "user_id") }
//
// A Model binds a schema to a driver:
//
//	drv, _ := sql.Open(dialect.Postgres, dsn)
//	users := loam.NewModel(drv, Users)
//	u, err := users.Find(ctx, 7, "posts")
//	posts, _ := u.Many("posts")
//
// Relations load eagerly: hydrating N parents costs one additional query
// per relation, never one per parent. Arbitrary queries go through the
// builder in dialect/sql, reachable from a model via Query.
package loam
