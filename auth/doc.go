/*
Package auth guards Apis behind JSON Web Tokens.

A [Service] issues and verifies HS256 signed tokens carrying [Claims]:
who the bearer is and which scopes they are granted.
[Guard] wraps any Api so that only requests with a valid token granting a scope reach it.

	svc, err := auth.NewService(os.Getenv("JWT_SECRET"))
	if err != nil {
		return err
	}

	admin := auth.Guard(blog.NewAdmin(pages), svc, "admin", log)
*/
package auth
