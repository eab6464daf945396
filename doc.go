/*
 * doc.go, part of gochem.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * Gochem is developed at the laboratory for instruction in Swedish, Department of Chemistry,
 * University of Helsinki, Finland.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package chem is the core of gochemkit. It provides atom, topology and molecule structures,
readers and writers for the PDB, PDBx/mmCIF, SDF, SMILES and XYZ formats (gzip and zstd
compressed files are handled transparently), and the chemistry the rest of the library
builds on:

    Bond assignment by distance, and template-based bonds, bond orders and charges
	for protein residues, with a choice of protonation policy.

    Implicit hydrogen counts from element valences and formal charges, and the addition
	(all hydrogens, or only those on polar atoms) and removal of explicit hydrogens.

    Residues, backbone dihedrals, Ramachandran data and a simple phi/psi plus backbone
	hydrogen bond assignment of alpha helices and beta strands.

    Construction of ideal peptide backbones from sequences and dihedrals.

Molecules keep their coordinates in v3.Matrix objects, one per frame.
*/
package chem
