package domain

// SampleBooks returns the built-in catalogue used on first run and after a
// reset. Every call yields fresh IDs.
func SampleBooks() []Book {
	params := []BookParams{
		{
			Title:         "The Great Gatsby",
			Author:        "F. Scott Fitzgerald",
			Description:   "A classic American novel set in the Jazz Age, exploring themes of decadence, idealism, resistance to change, and excess.",
			CoverImage:    "book.closed.fill",
			Genre:         GenreClassic,
			Rating:        4.5,
			TotalPages:    180,
			CurrentPage:   45,
			IsTrending:    true,
			PublishedYear: 1925,
		},
		{
			Title:         "To Kill a Mockingbird",
			Author:        "Harper Lee",
			Description:   "A gripping tale of racial injustice and childhood innocence in the American South during the 1930s.",
			CoverImage:    "book.fill",
			Genre:         GenreClassic,
			Rating:        4.8,
			TotalPages:    324,
			CurrentPage:   120,
			IsTrending:    true,
			PublishedYear: 1960,
		},
		{
			Title:         "1984",
			Author:        "George Orwell",
			Description:   "A dystopian social science fiction novel and cautionary tale about the dangers of totalitarianism.",
			CoverImage:    "book.closed.fill",
			Genre:         GenreScienceFiction,
			Rating:        4.7,
			TotalPages:    328,
			IsTrending:    true,
			PublishedYear: 1949,
		},
		{
			Title:         "Pride and Prejudice",
			Author:        "Jane Austen",
			Description:   "A romantic novel of manners that follows the character development of Elizabeth Bennet.",
			CoverImage:    "book.fill",
			Genre:         GenreRomance,
			Rating:        4.6,
			TotalPages:    432,
			CurrentPage:   200,
			PublishedYear: 1813,
		},
		{
			Title:         "The Hobbit",
			Author:        "J.R.R. Tolkien",
			Description:   "A fantasy novel about the quest of home-loving Bilbo Baggins to win a share of treasure guarded by a dragon.",
			CoverImage:    "book.closed.fill",
			Genre:         GenreFantasy,
			Rating:        4.7,
			TotalPages:    310,
			IsTrending:    true,
			PublishedYear: 1937,
		},
		{
			Title:         "The Catcher in the Rye",
			Author:        "J.D. Salinger",
			Description:   "A story about teenage rebellion and alienation, narrated by the iconic character Holden Caulfield.",
			CoverImage:    "book.fill",
			Genre:         GenreClassic,
			Rating:        4.0,
			TotalPages:    277,
			CurrentPage:   89,
			PublishedYear: 1951,
		},
		{
			Title:         "Dune",
			Author:        "Frank Herbert",
			Description:   "A science fiction masterpiece set in the distant future amidst a huge interstellar empire.",
			CoverImage:    "book.closed.fill",
			Genre:         GenreScienceFiction,
			Rating:        4.6,
			TotalPages:    688,
			IsTrending:    true,
			PublishedYear: 1965,
		},
		{
			Title:         "Harry Potter and the Sorcerer's Stone",
			Author:        "J.K. Rowling",
			Description:   "The magical journey of a young wizard attending Hogwarts School of Witchcraft and Wizardry.",
			CoverImage:    "book.fill",
			Genre:         GenreFantasy,
			Rating:        4.8,
			TotalPages:    309,
			CurrentPage:   150,
			PublishedYear: 1997,
		},
	}

	books := make([]Book, len(params))
	for i, p := range params {
		books[i] = NewBook(p)
	}
	return books
}
