/*
Package cache memoizes expensive computations per key in a bounded, least recently used cache.

	c, err := cache.New(64, renderArticle, nil, postDir)
	if err != nil {
		return err
	}

	h, ok := c.Get("hello-world")
	if !ok {
		// no such article
	}

	h.Read(func(page []byte) { w.Write(page) })

A [Store] can back a [Cache] so generated values outlive eviction,
e.g. a [RedisStore] shared between processes.
*/
package cache
